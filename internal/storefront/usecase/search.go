package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/results"
)

// Search submits the session's criteria and loads the result set. A fetch
// that is superseded by a newer Search or a CancelSearch while it runs is
// dropped without error; the returned snapshot then shows whatever the view
// holds at that moment.
func (u *Usecase) Search(ctx context.Context, sessionID string) (results.Snapshot, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return results.Snapshot{}, err
	}

	c, err := s.Builder.Submit()
	if err != nil {
		return results.Snapshot{}, err
	}

	fetchCtx, ticket := s.View.Begin(ctx, c)
	flights, fetchErr := u.SearchFlights(fetchCtx, c)

	if !s.View.Complete(ticket, flights, fetchErr) {
		slog.DebugContext(ctx, "search superseded", "session_id", s.ID, "ticket", ticket.Seq())
		return s.View.Snapshot(), nil
	}
	if fetchErr != nil {
		return s.View.Snapshot(), fetchErr
	}
	return s.View.Snapshot(), nil
}

// CancelSearch is the navigate-away path: a running fetch will not update
// the view when it returns.
func (u *Usecase) CancelSearch(sessionID string) (results.Snapshot, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return results.Snapshot{}, err
	}
	s.View.Cancel()
	return s.View.Snapshot(), nil
}

type ResultsOutput struct {
	Flights  []entity.Flight
	Snapshot results.Snapshot
	Total    int
}

// Results filters and orders the latest completed result set. Total is the
// size of the set before filtering.
func (u *Usecase) Results(sessionID string, filters results.FilterState, key results.SortKey) (ResultsOutput, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return ResultsOutput{}, err
	}
	flights, snap := s.View.Results(filters, key)
	return ResultsOutput{Flights: flights, Snapshot: snap, Total: len(snap.Flights)}, nil
}
