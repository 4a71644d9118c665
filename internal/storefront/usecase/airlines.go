package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

type AirlineSource interface {
	Airlines(ctx context.Context) ([]entity.Airline, error)
}

var FallbackAirlines = []entity.Airline{
	{Code: "GA", Name: "Garuda Indonesia"},
	{Code: "JT", Name: "Lion Air"},
	{Code: "ID", Name: "Batik Air"},
	{Code: "QZ", Name: "AirAsia Indonesia"},
	{Code: "QG", Name: "Citilink"},
}

var errNoAirlineSource = errors.New("no airline source configured")

type airlineState struct {
	mu        sync.RWMutex
	list      []entity.Airline
	fetchedAt time.Time
}

type AirlinesOutput struct {
	Airlines  []entity.Airline
	Fallback  bool
	FetchedAt time.Time
}

// Airlines returns the last fetched reference list. Until one fetch has
// succeeded it tries the source and falls back to a fixed list on failure.
// With no source configured the fixed list is the answer, not a failure.
func (u *Usecase) Airlines(ctx context.Context) AirlinesOutput {
	if out, ok := u.loadedAirlines(); ok {
		return out
	}
	if u.airlineSource == nil {
		return AirlinesOutput{Airlines: slices.Clone(FallbackAirlines), Fallback: true}
	}
	if err := u.RefreshAirlines(ctx); err != nil {
		slog.WarnContext(ctx, "airline list unavailable, using fallback", "error", err)
		return AirlinesOutput{Airlines: slices.Clone(FallbackAirlines), Fallback: true}
	}
	out, _ := u.loadedAirlines()
	return out
}

// RefreshAirlines replaces the cached list. On failure, or when the source
// answers with an empty list, the previous list is kept.
func (u *Usecase) RefreshAirlines(ctx context.Context) error {
	if u.airlineSource == nil {
		return errNoAirlineSource
	}

	fetchCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
	defer cancel()

	list, err := u.airlineSource.Airlines(fetchCtx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return errors.New("airline source returned no airlines")
	}

	u.airlines.mu.Lock()
	u.airlines.list = slices.Clone(list)
	u.airlines.fetchedAt = u.clock.Now()
	u.airlines.mu.Unlock()
	return nil
}

func (u *Usecase) loadedAirlines() (AirlinesOutput, bool) {
	u.airlines.mu.RLock()
	defer u.airlines.mu.RUnlock()
	if u.airlines.fetchedAt.IsZero() {
		return AirlinesOutput{}, false
	}
	return AirlinesOutput{Airlines: slices.Clone(u.airlines.list), FetchedAt: u.airlines.fetchedAt}, true
}
