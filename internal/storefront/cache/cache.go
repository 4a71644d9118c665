package cache

import (
	"sync"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is an in-memory TTL map. When clone is set, values are copied on the
// way in and out so callers never share state with the cache.
type Cache[T any] struct {
	mu      sync.RWMutex
	clock   pkgclock.Clock
	entries map[string]entry[T]
	clone   func(T) T
	onEvict func(key string, value T)
}

func New[T any](clock pkgclock.Clock, clone func(T) T) *Cache[T] {
	if clock == nil {
		clock = pkgclock.Real()
	}
	return &Cache[T]{
		clock:   clock,
		entries: make(map[string]entry[T]),
		clone:   clone,
	}
}

// OnEvict registers fn to receive entries dropped because they expired,
// whether found by Get or by Sweep. Delete does not call it. fn runs
// without the cache lock held.
func (c *Cache[T]) OnEvict(fn func(key string, value T)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if !c.clock.Now().Before(entry.expiry) {
		c.mu.Lock()
		evicted := false
		if current, ok := c.entries[key]; ok && current.expiry.Equal(entry.expiry) {
			delete(c.entries, key)
			evicted = true
		}
		onEvict := c.onEvict
		c.mu.Unlock()
		if evicted && onEvict != nil {
			onEvict(key, entry.value)
		}
		var zero T
		return zero, false
	}
	return c.cloneValue(entry.value), true
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
}

// Touch pushes the expiry of a live entry ttl into the future. It reports
// false when the key is absent or already expired.
func (c *Cache[T]) Touch(key string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	entry, ok := c.entries[key]
	if !ok || !now.Before(entry.expiry) {
		return false
	}
	entry.expiry = now.Add(ttl)
	c.entries[key] = entry
	return true
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep drops every expired entry and returns how many were removed.
func (c *Cache[T]) Sweep() int {
	c.mu.Lock()
	now := c.clock.Now()
	evicted := make(map[string]T)
	for key, entry := range c.entries {
		if !now.Before(entry.expiry) {
			delete(c.entries, key)
			evicted[key] = entry.value
		}
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for key, value := range evicted {
			onEvict(key, value)
		}
	}
	return len(evicted)
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}
