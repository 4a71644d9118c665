package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/airport"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

var errUnknownField = pkgerror.NewValidation("field", "field must be origin or destination")

func (u *Usecase) SearchAirports(ctx context.Context, sessionID, query string, kind entity.FieldKind) ([]entity.Airport, error) {
	if !kind.Valid() {
		return nil, errUnknownField
	}
	s, err := u.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return u.directory.Search(ctx, s.Owner, query, kind), nil
}

// InputAirport records a keystroke in a field. The typed text leaves the
// field unresolved until an airport is selected, and the suggestion search
// runs once the input has settled.
func (u *Usecase) InputAirport(sessionID string, kind entity.FieldKind, query string) (airport.Suggestion, error) {
	s, sg, err := u.suggester(sessionID, kind)
	if err != nil {
		return airport.Suggestion{}, err
	}

	if kind == entity.FieldOrigin {
		s.Builder.SetOrigin(query, nil)
	} else {
		s.Builder.SetDestination(query, nil)
	}
	sg.Input(query)
	return sg.Current(), nil
}

func (u *Usecase) AirportSuggestions(sessionID string, kind entity.FieldKind) (airport.Suggestion, error) {
	_, sg, err := u.suggester(sessionID, kind)
	if err != nil {
		return airport.Suggestion{}, err
	}
	return sg.Current(), nil
}

// SelectAirport resolves code, fills the matching criteria field and pushes
// the airport onto the owner's recent list. A recency write failure is
// logged and does not undo the selection.
func (u *Usecase) SelectAirport(ctx context.Context, sessionID string, kind entity.FieldKind, code string) (entity.Airport, error) {
	s, sg, err := u.suggester(sessionID, kind)
	if err != nil {
		return entity.Airport{}, err
	}
	a, ok := u.directory.Lookup(code)
	if !ok {
		return entity.Airport{}, pkgerror.NewValidation("code", "unknown airport code")
	}

	if kind == entity.FieldOrigin {
		s.Builder.SetOrigin("", &a)
	} else {
		s.Builder.SetDestination("", &a)
	}

	if err := sg.Select(ctx, a); err != nil {
		slog.WarnContext(ctx, "failed to save recent airport",
			"session_id", s.ID,
			"field", kind,
			"code", a.Code,
			"error", err,
		)
	}
	return a, nil
}

func (u *Usecase) suggester(sessionID string, kind entity.FieldKind) (*Session, *airport.Suggester, error) {
	if !kind.Valid() {
		return nil, nil, errUnknownField
	}
	s, err := u.Session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	sg, ok := s.Suggester(kind)
	if !ok {
		return nil, nil, errUnknownField
	}
	return s, sg, nil
}
