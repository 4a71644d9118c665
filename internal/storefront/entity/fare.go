package entity

import "slices"

type FareTag string

const (
	FareBasic FareTag = "basic"
	FareValue FareTag = "value"
	FareFlexi FareTag = "flexi"
)

type FareTier struct {
	ID               string
	Tag              FareTag
	Name             string
	Price            int64
	CabinBaggageKg   int
	CheckedBaggageKg int
	IsRefundable     bool
	IsReschedulable  bool
	Perks            []string
}

// SelectedFlight is a flight with a fare tier laid over it. Flight.Price,
// Flight.BaggageKg and the refund flags carry the tier's values. Passengers
// and TripType are those of the search the flight was picked from.
type SelectedFlight struct {
	Flight
	CabinBaggageKg int
	FareTierID     string
	FareTag        FareTag
	FareName       string
	BasePrice      int64
	Passengers     Passengers
	TripType       TripType
}

func (s SelectedFlight) Clone() SelectedFlight {
	s.Flight = s.Flight.Clone()
	return s
}

func (t FareTier) Clone() FareTier {
	t.Perks = slices.Clone(t.Perks)
	return t
}
