// Package pkgdebounce runs a function once its input has stopped changing
// for a fixed delay.
package pkgdebounce

import (
	"sync"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
)

// Debouncer holds at most one armed timer. Schedule cancels the armed timer
// before arming a new one, so fn runs once per settled value.
type Debouncer[T any] struct {
	mu    sync.Mutex
	clock pkgclock.Clock
	delay time.Duration
	fn    func(T)
	timer pkgclock.Timer
	seq   uint64
}

func New[T any](clock pkgclock.Clock, delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{clock: clock, delay: delay, fn: fn}
}

// Handle identifies one scheduled call.
type Handle[T any] struct {
	d   *Debouncer[T]
	seq uint64
}

// Cancel stops the call if it is still the armed one and has not run.
func (h Handle[T]) Cancel() bool {
	if h.d == nil {
		return false
	}
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if h.d.seq != h.seq || h.d.timer == nil {
		return false
	}
	h.d.seq++
	stopped := h.d.timer.Stop()
	h.d.timer = nil
	return stopped
}

func (d *Debouncer[T]) Schedule(value T) Handle[T] {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	timer := d.clock.AfterFunc(d.delay, func() { d.fire(seq, value) })

	d.mu.Lock()
	if d.seq == seq {
		d.timer = timer
	}
	d.mu.Unlock()

	return Handle[T]{d: d, seq: seq}
}

// Cancel drops whatever call is armed.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is armed and has not run yet.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) fire(seq uint64, value T) {
	d.mu.Lock()
	// A real timer can start its callback after Stop lost the race.
	if d.seq != seq {
		d.mu.Unlock()
		return
	}
	d.seq++
	d.timer = nil
	d.mu.Unlock()

	d.fn(value)
}
