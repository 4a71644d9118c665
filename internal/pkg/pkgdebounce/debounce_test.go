package pkgdebounce

import (
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
	"github.com/stretchr/testify/assert"
)

const window = 200 * time.Millisecond

func newRecorder() (*[]string, func(string)) {
	var got []string
	return &got, func(v string) { got = append(got, v) }
}

func TestDebouncer_RunsOncePerSettledValue(t *testing.T) {
	clock := pkgclock.Fake(time.Now())
	got, fn := newRecorder()
	d := New(clock, window, fn)

	d.Schedule("d")
	clock.Advance(50 * time.Millisecond)
	d.Schedule("de")
	clock.Advance(50 * time.Millisecond)
	d.Schedule("den")

	assert.Equal(t, 1, clock.Pending(), "earlier timers must be cancelled")
	assert.True(t, d.Pending())

	clock.Advance(window - time.Millisecond)
	assert.Empty(t, *got)

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"den"}, *got)
	assert.False(t, d.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, []string{"den"}, *got)
}

func TestDebouncer_SeparateSettledValues(t *testing.T) {
	clock := pkgclock.Fake(time.Now())
	got, fn := newRecorder()
	d := New(clock, window, fn)

	d.Schedule("cgk")
	clock.Advance(window)
	d.Schedule("dps")
	clock.Advance(window)

	assert.Equal(t, []string{"cgk", "dps"}, *got)
}

func TestDebouncer_HandleCancel(t *testing.T) {
	clock := pkgclock.Fake(time.Now())
	got, fn := newRecorder()
	d := New(clock, window, fn)

	first := d.Schedule("a")
	second := d.Schedule("ab")

	assert.False(t, first.Cancel(), "superseded handle is already cancelled")
	assert.True(t, second.Cancel())

	clock.Advance(time.Second)
	assert.Empty(t, *got)
	assert.False(t, second.Cancel())
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := pkgclock.Fake(time.Now())
	got, fn := newRecorder()
	d := New(clock, window, fn)

	d.Schedule("sub")
	d.Cancel()
	clock.Advance(time.Second)

	assert.Empty(t, *got)
	assert.Equal(t, 0, clock.Pending())
}

func TestDebouncer_RealClock(t *testing.T) {
	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	d := New(pkgclock.Real(), 10*time.Millisecond, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
		close(done)
	})

	for i := 1; i <= 5; i++ {
		d.Schedule(i)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call did not run")
	}

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, got)
}
