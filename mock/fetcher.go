// Package mock provides hand-written mocks for the docmd interfaces.
package mock

import (
	"context"

	"github.com/pmarkowski/docmd"
)

var _ docmd.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docmd.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*docmd.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*docmd.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
