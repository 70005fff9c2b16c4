package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/cpm"
	"golang.org/x/time/rate"
)

var _ cpm.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-judge rate limiting using token buckets.
// Hosts of the same judge (e.g. codeforces.com and m1.codeforces.com)
// share one bucket; other hosts get a bucket each.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each judge gets its own limiter with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := host
	if site := cpm.SiteFromHost(host); site != cpm.SiteUnknown {
		key = string(site)
	}

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
