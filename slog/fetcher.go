// Package slog provides logging decorators for the pipeline's collaborator
// interfaces, built on log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pmarkowski/docmd"
)

// Ensure LoggingFetcher implements docmd.Fetcher.
var _ docmd.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   docmd.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docmd.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *docmd.FetchResult, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if result != nil {
			bytes = len(result.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
