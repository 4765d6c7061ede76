package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/pmarkowski/docmd"
	"golang.org/x/time/rate"
)

var _ docmd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per domain using token buckets. Each domain
// gets its own limiter with a burst of 1, so the configured delay is a
// politeness floor between consecutive requests to the same host while
// requests to different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter enforcing the given minimum
// delay between requests to one domain. A zero or negative delay disables
// pacing.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain. Returns
// an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
