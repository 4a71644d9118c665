package airport

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgclock"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgdebounce"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

const DefaultDebounce = 200 * time.Millisecond

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusReady     Status = "ready"
	StatusNoResults Status = "no_results"
)

type Suggestion struct {
	Query    string
	Status   Status
	Airports []entity.Airport
}

// Suggester drives one search field: every Input restarts the debounce
// window and only the settled query is searched.
type Suggester struct {
	dir      *Directory
	owner    string
	kind     entity.FieldKind
	onUpdate func(Suggestion)
	debounce *pkgdebounce.Debouncer[pendingQuery]

	mu      sync.Mutex
	gen     uint64
	current Suggestion
}

// pendingQuery ties a scheduled search to the input generation that armed it.
type pendingQuery struct {
	query string
	gen   uint64
}

type SuggesterOption func(*Suggester)

// WithUpdates registers a callback that receives each settled result.
func WithUpdates(fn func(Suggestion)) SuggesterOption {
	return func(s *Suggester) { s.onUpdate = fn }
}

func NewSuggester(dir *Directory, clock pkgclock.Clock, delay time.Duration, owner string, kind entity.FieldKind, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		dir:     dir,
		owner:   owner,
		kind:    kind,
		current: Suggestion{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.debounce = pkgdebounce.New(clock, delay, s.run)
	return s
}

func (s *Suggester) Input(query string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.current = Suggestion{Query: query, Status: StatusLoading}
	s.mu.Unlock()

	s.debounce.Schedule(pendingQuery{query: query, gen: gen})
}

// Select stores the pick in the recency list and drops any pending search.
func (s *Suggester) Select(ctx context.Context, a entity.Airport) error {
	s.debounce.Cancel()
	s.mu.Lock()
	s.gen++
	s.current = Suggestion{Query: a.Code, Status: StatusIdle}
	s.mu.Unlock()
	return s.dir.Select(ctx, s.owner, a, s.kind)
}

func (s *Suggester) Close() {
	s.debounce.Cancel()
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

func (s *Suggester) Current() Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.current
	out.Airports = append([]entity.Airport(nil), s.current.Airports...)
	return out
}

// run publishes its result only while no newer Input, Select or Close has
// happened since it was scheduled.
func (s *Suggester) run(p pendingQuery) {
	airports := s.dir.Search(context.Background(), s.owner, p.query, s.kind)
	result := Suggestion{Query: p.query, Status: StatusReady, Airports: airports}
	if len(airports) == 0 {
		result.Status = StatusNoResults
	}

	s.mu.Lock()
	if p.gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.current = result
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(result)
	}
}
