package provider

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// rateLimiter spaces calls at least interval apart.
type rateLimiter struct {
	mu       sync.Mutex
	clock    pkgclock.Clock
	interval time.Duration
	last     time.Time
}

func newRateLimiter(clock pkgclock.Clock, interval time.Duration) *rateLimiter {
	return &rateLimiter{clock: clock, interval: interval}
}

func (r *rateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	for {
		now := r.clock.Now()
		r.mu.Lock()
		if r.last.IsZero() || now.Sub(r.last) >= r.interval {
			r.last = now
			r.mu.Unlock()
			return nil
		}
		wait := r.interval - now.Sub(r.last)
		r.mu.Unlock()

		ready := make(chan struct{})
		timer := r.clock.AfterFunc(wait, func() { close(ready) })
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-ready:
		}
	}
}

type rateLimitedProvider struct {
	provider Provider
	limiter  *rateLimiter
}

// WithRateLimit wraps p so that consecutive searches start at least interval
// apart. A non-positive interval disables the limit.
func WithRateLimit(p Provider, clock pkgclock.Clock, interval time.Duration) Provider {
	return &rateLimitedProvider{
		provider: p,
		limiter:  newRateLimiter(clock, interval),
	}
}

func (r *rateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *rateLimitedProvider) Search(ctx context.Context, c entity.SearchCriteria) ([]entity.Flight, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Search(ctx, c)
}
