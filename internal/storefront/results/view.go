package results

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Ticket identifies one fetch. Only the ticket from the latest Begin may
// complete the view.
type Ticket struct {
	seq      uint64
	criteria string
}

func (t Ticket) Seq() uint64 { return t.seq }

type Snapshot struct {
	Criteria *entity.SearchCriteria
	Status   Status
	Flights  []entity.Flight
	Err      error
	Seq      uint64
}

// View holds the latest completed result set for one session and discards
// responses that arrive for a superseded search.
type View struct {
	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	pending  *entity.SearchCriteria
	criteria *entity.SearchCriteria
	status   Status
	flights  []entity.Flight
	err      error
}

func NewView() *View {
	return &View{status: StatusIdle}
}

// Begin starts a fetch for c. Any fetch still in flight is cancelled and its
// result will be ignored. The returned context is cancelled on the next
// Begin, Cancel or Reset.
func (v *View) Begin(ctx context.Context, c entity.SearchCriteria) (context.Context, Ticket) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.abortLocked()
	v.seq++

	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	pending := c
	v.pending = &pending
	v.status = StatusLoading

	return fetchCtx, Ticket{seq: v.seq, criteria: c.Key()}
}

// Complete records the outcome of the fetch for t. It returns false when t
// has been superseded, in which case nothing changes. A failed fetch leaves
// an empty result set.
func (v *View) Complete(t Ticket, flights []entity.Flight, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.seq != v.seq || v.pending == nil || v.pending.Key() != t.criteria {
		slog.Debug("discard stale search response", "ticket", t.seq, "latest", v.seq)
		return false
	}

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.criteria = v.pending
	v.pending = nil

	if err != nil {
		v.status = StatusFailed
		v.flights = nil
		v.err = err
		return true
	}

	v.status = StatusReady
	v.flights = entity.CloneFlights(flights)
	v.err = nil
	return true
}

// Cancel abandons the in-flight fetch, if any. The last completed result set
// stays visible.
func (v *View) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pending == nil {
		return
	}
	v.abortLocked()
	v.seq++
	v.pending = nil
	v.status = v.settledStatusLocked()
}

// Reset cancels any fetch and forgets every result.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.abortLocked()
	v.seq++
	v.pending = nil
	v.criteria = nil
	v.flights = nil
	v.err = nil
	v.status = StatusIdle
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		Status:  v.status,
		Flights: entity.CloneFlights(v.flights),
		Err:     v.err,
		Seq:     v.seq,
	}
	if v.criteria != nil {
		c := *v.criteria
		s.Criteria = &c
	}
	return s
}

// Results applies filters and order to the latest completed result set.
func (v *View) Results(filters FilterState, key SortKey) ([]entity.Flight, Snapshot) {
	s := v.Snapshot()
	return Apply(s.Flights, filters, key), s
}

// Find looks up a flight by ID in the latest completed result set.
func (v *View) Find(id string) (entity.Flight, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, f := range v.flights {
		if f.ID == id {
			return f.Clone(), true
		}
	}
	return entity.Flight{}, false
}

func (v *View) abortLocked() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *View) settledStatusLocked() Status {
	switch {
	case v.err != nil:
		return StatusFailed
	case v.criteria != nil:
		return StatusReady
	default:
		return StatusIdle
	}
}
