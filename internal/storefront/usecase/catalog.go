package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/provider"
)

const (
	PromoDirect      = "direct"
	PromoLowestPrice = "lowest-price"
)

var errProviderFailed = errors.New("provider search failed")

// SearchFlights asks the provider for flights matching c. Identical queries
// in flight at the same time share one provider call, and successful answers
// are cached. Every failure comes back as a Fetch error.
func (u *Usecase) SearchFlights(ctx context.Context, c entity.SearchCriteria) ([]entity.Flight, error) {
	key := c.Key()
	if cached, ok := u.cache.Get(key); ok {
		return cached, nil
	}

	ch := u.inflight.DoChan(key, func() (any, error) {
		providerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.providerTimeout)
		defer cancel()

		flights, err := u.searchWithRetry(providerCtx, c)
		if err != nil {
			return nil, err
		}
		derivePromos(flights)
		u.cache.Set(key, flights, u.cacheTTL)
		return flights, nil
	})

	select {
	case <-ctx.Done():
		return nil, pkgerror.NewFetch("flight search was cancelled", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			slog.WarnContext(ctx, "flight search failed",
				"provider", u.provider.Name(),
				"criteria", key,
				"error", res.Err,
			)
			return nil, pkgerror.NewFetch("flights could not be loaded, please try again", res.Err)
		}
		return entity.CloneFlights(res.Val.([]entity.Flight)), nil
	}
}

func (u *Usecase) searchWithRetry(ctx context.Context, c entity.SearchCriteria) ([]entity.Flight, error) {
	backoff := 80 * time.Millisecond
	for attempt := 0; attempt <= u.maxProviderRetries; attempt++ {
		flights, err := u.provider.Search(ctx, c)
		if err == nil {
			return flights, nil
		}
		if !errors.Is(err, provider.ErrTemporary) {
			return nil, err
		}
		if attempt == u.maxProviderRetries {
			return nil, err
		}
		if waitErr := u.sleep(ctx, backoff); waitErr != nil {
			return nil, waitErr
		}
		backoff *= 2
	}
	return nil, errProviderFailed
}

func (u *Usecase) sleep(ctx context.Context, d time.Duration) error {
	ready := make(chan struct{})
	timer := u.clock.AfterFunc(d, func() { close(ready) })
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-ready:
		return nil
	}
}

// derivePromos tags direct flights and every flight at the set's lowest
// price, keeping the provider's own promos first.
func derivePromos(flights []entity.Flight) {
	if len(flights) == 0 {
		return
	}
	lowest := flights[0].Price
	for _, f := range flights[1:] {
		lowest = min(lowest, f.Price)
	}

	for i := range flights {
		f := &flights[i]
		f.Promos = dedupe(f.Promos)
		if f.Stops == 0 {
			f.Promos = appendUnique(f.Promos, PromoDirect)
		}
		if f.Price == lowest {
			f.Promos = appendUnique(f.Promos, PromoLowestPrice)
		}
	}
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = appendUnique(out, v)
	}
	return out
}

func appendUnique(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append(values, value)
}
