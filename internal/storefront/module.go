package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkguid"
	"github.com/shandysiswandi/goflightstore/internal/storefront/airport"
	"github.com/shandysiswandi/goflightstore/internal/storefront/cache"
	"github.com/shandysiswandi/goflightstore/internal/storefront/checkout"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/inbound"
	"github.com/shandysiswandi/goflightstore/internal/storefront/provider"
	"github.com/shandysiswandi/goflightstore/internal/storefront/recent"
	"github.com/shandysiswandi/goflightstore/internal/storefront/usecase"
)

const (
	defaultMockPath       = "mocks/flights.json"
	defaultAirlineRefresh = "@every 30m"
	sessionSweepSchedule  = "@every 1m"
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
	UUID   pkguid.StringID
	// Clock defaults to the wall clock.
	Clock pkgclock.Clock
}

// Module owns the storefront's background resources.
type Module struct {
	Usecase *usecase.Usecase
	cron    *cron.Cron
	redis   *redis.Client
}

func New(dep Dependency) (*Module, error) {
	cfg := dep.Config
	clock := dep.Clock
	if clock == nil {
		clock = pkgclock.Real()
	}
	m := &Module{}

	store, err := m.recentStore(cfg)
	if err != nil {
		return nil, err
	}

	dir, err := airport.NewDirectory(store)
	if err != nil {
		return nil, err
	}

	timeout := millis(cfg, "modules.storefront.provider.timeout_ms", usecase.DefaultProviderTimeout)
	httpClient := &http.Client{Timeout: timeout}

	var p provider.Provider
	switch kind := strings.ToLower(cfg.GetString("modules.storefront.provider.kind")); kind {
	case "http":
		baseURL := cfg.GetString("modules.storefront.provider.base_url")
		if baseURL == "" {
			return nil, errors.New("modules.storefront.provider.base_url is required for the http provider")
		}
		p = provider.NewHTTPProvider(baseURL, httpClient)
	case "", "file":
		path := cfg.GetString("modules.storefront.provider.mock_path")
		if path == "" {
			path = defaultMockPath
		}
		p = provider.NewFileProvider(path)
	default:
		return nil, fmt.Errorf("unknown provider kind %q", kind)
	}
	p = provider.WithRateLimit(p, clock, millis(cfg, "modules.storefront.provider.rate_limit_ms", 100*time.Millisecond))

	var airlines usecase.AirlineSource
	if url := cfg.GetString("modules.storefront.airlines.url"); url != "" {
		airlines = provider.NewHTTPAirlines(url, httpClient)
	}

	finalizer := checkout.NewFinalizer(checkout.NewHTTPClient(cfg.GetString("modules.storefront.checkout.url"), httpClient))

	maxRetries := 2
	if cfg.GetString("modules.storefront.provider.max_retries") != "" {
		maxRetries = max(cfg.GetInt("modules.storefront.provider.max_retries"), 0)
	}

	cacheTTL := 60 * time.Second
	if ttlSeconds := cfg.GetInt("modules.storefront.cache.ttl_seconds"); ttlSeconds > 0 {
		cacheTTL = time.Duration(ttlSeconds) * time.Second
	}

	sessionTTL := usecase.DefaultSessionTTL
	if minutes := cfg.GetInt("modules.storefront.session.ttl_minutes"); minutes > 0 {
		sessionTTL = time.Duration(minutes) * time.Minute
	}

	m.Usecase = usecase.New(usecase.Dependency{
		Provider:           p,
		Airlines:           airlines,
		Directory:          dir,
		Finalizer:          finalizer,
		Clock:              clock,
		UUID:               dep.UUID,
		Cache:              cache.New(clock, entity.CloneFlights),
		Sessions:           cache.New[*usecase.Session](clock, nil),
		CacheTTL:           cacheTTL,
		ProviderTimeout:    timeout,
		MaxProviderRetries: maxRetries,
		SessionTTL:         sessionTTL,
		DebounceDelay:      millis(cfg, "modules.storefront.search.debounce_ms", airport.DefaultDebounce),
	})

	if err := m.schedule(cfg); err != nil {
		m.closeRedis()
		return nil, err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, m.Usecase)

	return m, nil
}

func (m *Module) recentStore(cfg pkgconfig.Config) (recent.Store, error) {
	switch driver := strings.ToLower(cfg.GetString("modules.storefront.recent.driver")); driver {
	case "", "memory":
		return recent.NewMemoryStore(), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.GetString("modules.storefront.recent.redis_addr"),
			Password: cfg.GetString("modules.storefront.recent.redis_password"),
			DB:       cfg.GetInt("modules.storefront.recent.redis_db"),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}

		m.redis = rdb
		ttl := time.Duration(cfg.GetInt("modules.storefront.recent.ttl_hours")) * time.Hour
		return recent.NewRedisStore(rdb, ttl), nil
	default:
		return nil, fmt.Errorf("unknown recent store driver %q", driver)
	}
}

// schedule starts the airline list refresh and the session sweep.
func (m *Module) schedule(cfg pkgconfig.Config) error {
	refresh := cfg.GetString("modules.storefront.airlines.refresh_cron")
	if refresh == "" {
		refresh = defaultAirlineRefresh
	}

	m.cron = cron.New()
	uc := m.Usecase
	if _, err := m.cron.AddFunc(refresh, func() {
		if err := uc.RefreshAirlines(context.Background()); err != nil {
			slog.Warn("failed to refresh airline list", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule airline refresh %q: %w", refresh, err)
	}
	if _, err := m.cron.AddFunc(sessionSweepSchedule, func() {
		uc.SweepSessions(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	m.cron.Start()
	return nil
}

// Close stops scheduled jobs, waiting for running ones until ctx is done,
// then releases the redis connection.
func (m *Module) Close(ctx context.Context) error {
	var err error
	if m.cron != nil {
		select {
		case <-m.cron.Stop().Done():
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	return errors.Join(err, m.closeRedis())
}

func (m *Module) closeRedis() error {
	if m.redis == nil {
		return nil
	}
	err := m.redis.Close()
	m.redis = nil
	return err
}

func millis(cfg pkgconfig.Config, key string, fallback time.Duration) time.Duration {
	if ms := cfg.GetInt(key); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
