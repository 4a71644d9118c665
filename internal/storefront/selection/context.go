// Package selection holds the flight and fare a shopper is about to buy.
package selection

import (
	"sync"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// Context is a single slot shared by every page of one shopper. A new Set
// replaces the previous value; there is no history.
type Context struct {
	mu       sync.RWMutex
	value    entity.SelectedFlight
	selected bool
	version  uint64
}

func New() *Context {
	return &Context{}
}

func (c *Context) Set(s entity.SelectedFlight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = s.Clone()
	c.selected = true
	c.version++
}

// Get returns a copy of the current selection.
func (c *Context) Get() (entity.SelectedFlight, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.selected {
		return entity.SelectedFlight{}, false
	}
	return c.value.Clone(), true
}

func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected {
		c.version++
	}
	c.value = entity.SelectedFlight{}
	c.selected = false
}

// Version increases on every change, so readers can tell whether the value
// they rendered is still current.
func (c *Context) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
