package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore keeps each list for ttl after its last write. A zero ttl
// keeps lists forever.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

type airportSnapshot struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"description,omitempty"`
}

func (s *RedisStore) Load(ctx context.Context, owner string, kind entity.FieldKind) ([]entity.Airport, error) {
	raw, err := s.rdb.Get(ctx, storeKey(owner, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get recent airports: %w", err)
	}

	var snapshots []airportSnapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, fmt.Errorf("decode recent airports: %w", err)
	}

	airports := make([]entity.Airport, 0, len(snapshots))
	for _, s := range snapshots {
		airports = append(airports, entity.Airport{
			ID:          s.ID,
			Code:        s.Code,
			Name:        s.Name,
			City:        s.City,
			Country:     s.Country,
			Description: s.Description,
		})
	}
	return airports, nil
}

func (s *RedisStore) Save(ctx context.Context, owner string, kind entity.FieldKind, airports []entity.Airport) error {
	snapshots := make([]airportSnapshot, 0, len(airports))
	for _, a := range airports {
		snapshots = append(snapshots, airportSnapshot{
			ID:          a.ID,
			Code:        a.Code,
			Name:        a.Name,
			City:        a.City,
			Country:     a.Country,
			Description: a.Description,
		})
	}

	raw, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("encode recent airports: %w", err)
	}
	if err := s.rdb.Set(ctx, storeKey(owner, kind), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set recent airports: %w", err)
	}
	return nil
}
