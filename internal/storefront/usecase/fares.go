package usecase

import (
	"slices"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/fare"
)

var ErrFlightNotFound = pkgerror.NewNotFound("flight is not in the current results")

type FaresOutput struct {
	Flight entity.Flight
	Tiers  []entity.FareTier
}

func (u *Usecase) Fares(sessionID, flightID string) (FaresOutput, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return FaresOutput{}, err
	}
	f, ok := s.View.Find(flightID)
	if !ok {
		return FaresOutput{}, ErrFlightNotFound
	}
	return FaresOutput{Flight: f, Tiers: fare.DeriveTiers(f)}, nil
}

// SelectFare lays the tier over the flight and stores it as the session's
// selection, replacing any earlier one. The travellers and trip type of the
// search that produced the flight are stored with it, so later searches do
// not change what is being bought.
func (u *Usecase) SelectFare(sessionID, flightID, tierID string) (SelectionOutput, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return SelectionOutput{}, err
	}
	snap := s.View.Snapshot()
	idx := slices.IndexFunc(snap.Flights, func(f entity.Flight) bool { return f.ID == flightID })
	if idx < 0 || snap.Criteria == nil {
		return SelectionOutput{}, ErrFlightNotFound
	}
	selected, err := fare.Select(snap.Flights[idx], tierID)
	if err != nil {
		return SelectionOutput{}, err
	}
	selected.Passengers = snap.Criteria.Passengers
	selected.TripType = snap.Criteria.TripType
	s.Selection.Set(selected)
	return u.selectionOf(s), nil
}

type SelectionOutput struct {
	Selected   *entity.SelectedFlight
	Passengers entity.Passengers
	TripType   entity.TripType
}

func (u *Usecase) Selection(sessionID string) (SelectionOutput, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return SelectionOutput{}, err
	}
	return u.selectionOf(s), nil
}

func (u *Usecase) ClearSelection(sessionID string) error {
	s, err := u.Session(sessionID)
	if err != nil {
		return err
	}
	s.Selection.Clear()
	return nil
}

// selectionOf reports the travellers stored with the selection. With nothing
// selected it falls back to the latest search, then to the draft.
func (u *Usecase) selectionOf(s *Session) SelectionOutput {
	if sel, ok := s.Selection.Get(); ok {
		return SelectionOutput{Selected: &sel, Passengers: sel.Passengers, TripType: sel.TripType}
	}
	if snap := s.View.Snapshot(); snap.Criteria != nil {
		return SelectionOutput{Passengers: snap.Criteria.Passengers, TripType: snap.Criteria.TripType}
	}
	d := s.Builder.Draft()
	return SelectionOutput{Passengers: d.Passengers, TripType: d.TripType}
}
