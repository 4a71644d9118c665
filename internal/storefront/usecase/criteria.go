package usecase

import (
	"strings"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/criteria"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// CriteriaInput is a partial update; nil fields are left as they are. An
// empty date string clears the date.
type CriteriaInput struct {
	Origin        *string
	Destination   *string
	DepartureDate *string
	ReturnDate    *string
	TripType      *string
	Passengers    *entity.Passengers
	CabinClass    *string
}

// UpdateCriteria validates every present field before it changes any of
// them, so a rejected update leaves the draft untouched.
func (u *Usecase) UpdateCriteria(sessionID string, in CriteriaInput) (criteria.Draft, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return criteria.Draft{}, err
	}

	var apply []func() error

	if in.Origin != nil {
		display, a := u.resolve(*in.Origin)
		apply = append(apply, func() error { s.Builder.SetOrigin(display, a); return nil })
	}
	if in.Destination != nil {
		display, a := u.resolve(*in.Destination)
		apply = append(apply, func() error { s.Builder.SetDestination(display, a); return nil })
	}
	if in.DepartureDate != nil {
		date, err := parseDate("departure_date", *in.DepartureDate)
		if err != nil {
			return criteria.Draft{}, err
		}
		apply = append(apply, func() error { s.Builder.SetDepartureDate(date); return nil })
	}
	if in.ReturnDate != nil {
		date, err := parseDate("return_date", *in.ReturnDate)
		if err != nil {
			return criteria.Draft{}, err
		}
		apply = append(apply, func() error { s.Builder.SetReturnDate(date); return nil })
	}
	if in.TripType != nil {
		t := entity.TripType(strings.ToLower(strings.TrimSpace(*in.TripType)))
		if !t.Valid() {
			return criteria.Draft{}, pkgerror.NewValidation("trip_type", "trip type must be one-way or round-trip")
		}
		apply = append(apply, func() error { return s.Builder.SetTripType(t) })
	}
	if in.Passengers != nil {
		p := *in.Passengers
		if err := criteria.ValidatePassengers(p); err != nil {
			return criteria.Draft{}, err
		}
		apply = append(apply, func() error { return s.Builder.SetPassengers(p) })
	}
	if in.CabinClass != nil {
		c := entity.CabinClass(strings.ToLower(strings.TrimSpace(*in.CabinClass)))
		if !c.Valid() {
			return criteria.Draft{}, pkgerror.NewValidation("cabin_class", "cabin class must be economy, premium-economy, business or first")
		}
		apply = append(apply, func() error { return s.Builder.SetCabinClass(c) })
	}

	for _, fn := range apply {
		if err := fn(); err != nil {
			return criteria.Draft{}, err
		}
	}
	return s.Builder.Draft(), nil
}

func (u *Usecase) SwapCriteria(sessionID string) (criteria.Draft, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return criteria.Draft{}, err
	}
	s.Builder.Swap()
	return s.Builder.Draft(), nil
}

func (u *Usecase) Criteria(sessionID string) (criteria.Draft, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return criteria.Draft{}, err
	}
	return s.Builder.Draft(), nil
}

// resolve treats value as an airport code; anything else stays as
// unresolved display text.
func (u *Usecase) resolve(value string) (string, *entity.Airport) {
	if a, ok := u.directory.Lookup(value); ok {
		return "", &a
	}
	return value, nil
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return nil, pkgerror.NewValidation(field, "date must use YYYY-MM-DD")
	}
	return &t, nil
}
