package recent

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]entity.Airport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]entity.Airport)}
}

func (m *MemoryStore) Load(_ context.Context, owner string, kind entity.FieldKind) ([]entity.Airport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries[storeKey(owner, kind)]), nil
}

func (m *MemoryStore) Save(_ context.Context, owner string, kind entity.FieldKind, airports []entity.Airport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[storeKey(owner, kind)] = slices.Clone(airports)
	return nil
}

func storeKey(owner string, kind entity.FieldKind) string {
	return "recent_airports:" + owner + ":" + string(kind)
}
