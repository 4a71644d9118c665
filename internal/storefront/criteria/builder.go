package criteria

import (
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// Endpoint is one side of the route: what the user typed and the airport it
// resolved to, if any.
type Endpoint struct {
	Display string
	Airport *entity.Airport
}

func (e Endpoint) Resolved() bool { return e.Airport != nil }

type Draft struct {
	Origin        Endpoint
	Destination   Endpoint
	DepartureDate *time.Time
	ReturnDate    *time.Time
	TripType      entity.TripType
	Passengers    entity.Passengers
	CabinClass    entity.CabinClass
}

// Builder collects criteria fields one at a time. It is safe for concurrent
// use.
type Builder struct {
	mu    sync.Mutex
	draft Draft
}

func NewBuilder() *Builder {
	return &Builder{draft: Draft{
		TripType:   entity.TripOneWay,
		Passengers: entity.Passengers{Adults: 1},
		CabinClass: entity.CabinEconomy,
	}}
}

// SetOrigin replaces the origin. A nil airport leaves it unresolved.
func (b *Builder) SetOrigin(display string, a *entity.Airport) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Origin = newEndpoint(display, a)
}

func (b *Builder) SetDestination(display string, a *entity.Airport) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Destination = newEndpoint(display, a)
}

func (b *Builder) SetDepartureDate(date *time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.DepartureDate = truncateDate(date)
}

func (b *Builder) SetReturnDate(date *time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.ReturnDate = truncateDate(date)
}

func (b *Builder) SetTripType(t entity.TripType) error {
	if !t.Valid() {
		return pkgerror.NewValidation("trip_type", "trip type must be one-way or round-trip")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.TripType = t
	return nil
}

func (b *Builder) SetPassengers(p entity.Passengers) error {
	if err := ValidatePassengers(p); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Passengers = p
	return nil
}

func (b *Builder) SetCabinClass(c entity.CabinClass) error {
	if !c.Valid() {
		return pkgerror.NewValidation("cabin_class", "cabin class must be economy, premium-economy, business or first")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.CabinClass = c
	return nil
}

// Swap exchanges origin and destination, display text and airport together.
func (b *Builder) Swap() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Origin, b.draft.Destination = b.draft.Destination, b.draft.Origin
}

// Draft returns a copy that shares no pointers with the builder.
func (b *Builder) Draft() Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.draft
	d.Origin = newEndpoint(d.Origin.Display, d.Origin.Airport)
	d.Destination = newEndpoint(d.Destination.Display, d.Destination.Airport)
	d.DepartureDate = truncateDate(d.DepartureDate)
	d.ReturnDate = truncateDate(d.ReturnDate)
	return d
}

// Submit turns the draft into criteria, or reports the first field that
// blocks it. The draft is left unchanged either way.
func (b *Builder) Submit() (entity.SearchCriteria, error) {
	d := b.Draft()

	if !d.Origin.Resolved() {
		return entity.SearchCriteria{}, pkgerror.NewValidation("origin", "choose a departure airport")
	}
	if !d.Destination.Resolved() {
		return entity.SearchCriteria{}, pkgerror.NewValidation("destination", "choose an arrival airport")
	}
	if d.Origin.Airport.ID == d.Destination.Airport.ID {
		return entity.SearchCriteria{}, pkgerror.NewValidation("destination", "arrival airport must differ from departure airport")
	}
	if d.DepartureDate == nil {
		return entity.SearchCriteria{}, pkgerror.NewValidation("departure_date", "choose a departure date")
	}
	if err := ValidatePassengers(d.Passengers); err != nil {
		return entity.SearchCriteria{}, err
	}

	c := entity.SearchCriteria{
		OriginCode:      d.Origin.Airport.Code,
		DestinationCode: d.Destination.Airport.Code,
		DepartureDate:   *d.DepartureDate,
		TripType:        d.TripType,
		Passengers:      d.Passengers,
		CabinClass:      d.CabinClass,
	}

	if d.TripType == entity.TripRoundTrip {
		if d.ReturnDate == nil {
			return entity.SearchCriteria{}, pkgerror.NewValidation("return_date", "choose a return date")
		}
		if d.ReturnDate.Before(*d.DepartureDate) {
			return entity.SearchCriteria{}, pkgerror.NewValidation("return_date", "return date cannot be before departure date")
		}
		ret := *d.ReturnDate
		c.ReturnDate = &ret
	}

	return c, nil
}

func ValidatePassengers(p entity.Passengers) error {
	switch {
	case p.Adults < 1:
		return pkgerror.NewValidation("adults", "at least one adult is required")
	case p.Children < 0:
		return pkgerror.NewValidation("children", "children cannot be negative")
	case p.Infants < 0:
		return pkgerror.NewValidation("infants", "infants cannot be negative")
	}
	return nil
}

func newEndpoint(display string, a *entity.Airport) Endpoint {
	e := Endpoint{Display: strings.TrimSpace(display)}
	if a != nil {
		copied := *a
		e.Airport = &copied
		if e.Display == "" {
			e.Display = copied.City + " (" + copied.Code + ")"
		}
	}
	return e
}

func truncateDate(date *time.Time) *time.Time {
	if date == nil {
		return nil
	}
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return &day
}
