package mock

import (
	"context"

	"github.com/pmarkowski/docmd"
)

var _ docmd.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docmd.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ docmd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docmd.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

var _ docmd.Optimizer = (*Optimizer)(nil)

// Optimizer is a mock implementation of docmd.Optimizer.
type Optimizer struct {
	NameFn  func() string
	ApplyFn func(markdown string) string
}

func (o *Optimizer) Name() string {
	if o.NameFn == nil {
		return "mock"
	}
	return o.NameFn()
}

func (o *Optimizer) Apply(markdown string) string {
	if o.ApplyFn == nil {
		return markdown
	}
	return o.ApplyFn(markdown)
}
