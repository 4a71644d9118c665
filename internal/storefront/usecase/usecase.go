package usecase

import (
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkguid"
	"github.com/shandysiswandi/goflightstore/internal/storefront/airport"
	"github.com/shandysiswandi/goflightstore/internal/storefront/cache"
	"github.com/shandysiswandi/goflightstore/internal/storefront/checkout"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/provider"
	"golang.org/x/sync/singleflight"
)

const DefaultProviderTimeout = 3 * time.Second

type Dependency struct {
	Provider           provider.Provider
	Airlines           AirlineSource
	Directory          *airport.Directory
	Finalizer          *checkout.Finalizer
	Clock              pkgclock.Clock
	UUID               pkguid.StringID
	Cache              *cache.Cache[[]entity.Flight]
	Sessions           *cache.Cache[*Session]
	CacheTTL           time.Duration
	ProviderTimeout    time.Duration
	MaxProviderRetries int
	SessionTTL         time.Duration
	DebounceDelay      time.Duration
}

type Usecase struct {
	provider           provider.Provider
	airlineSource      AirlineSource
	directory          *airport.Directory
	finalizer          *checkout.Finalizer
	clock              pkgclock.Clock
	uuid               pkguid.StringID
	cache              *cache.Cache[[]entity.Flight]
	sessions           *cache.Cache[*Session]
	inflight           singleflight.Group
	airlines           airlineState
	cacheTTL           time.Duration
	providerTimeout    time.Duration
	maxProviderRetries int
	sessionTTL         time.Duration
	debounceDelay      time.Duration
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = pkgclock.Real()
	}
	debounce := dep.DebounceDelay
	if debounce <= 0 {
		debounce = airport.DefaultDebounce
	}
	timeout := dep.ProviderTimeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	u := &Usecase{
		provider:           dep.Provider,
		airlineSource:      dep.Airlines,
		directory:          dep.Directory,
		finalizer:          dep.Finalizer,
		clock:              clock,
		uuid:               dep.UUID,
		cache:              dep.Cache,
		sessions:           dep.Sessions,
		cacheTTL:           dep.CacheTTL,
		providerTimeout:    timeout,
		maxProviderRetries: dep.MaxProviderRetries,
		sessionTTL:         dep.SessionTTL,
		debounceDelay:      debounce,
	}
	if u.sessions != nil {
		u.sessions.OnEvict(func(_ string, s *Session) { s.close() })
	}
	return u
}
