package entity

import (
	"slices"
	"time"
)

type FlightPoint struct {
	Code    string
	Name    string
	City    string
	Country string
}

type Flight struct {
	ID              string
	Airline         Airline
	FlightNumber    string
	Origin          FlightPoint
	Destination     FlightPoint
	DepartureTime   time.Time
	ArrivalTime     time.Time
	Price           int64
	Stops           int
	IsRefundable    bool
	IsReschedulable bool
	BaggageKg       int
	Amenities       []string
	Promos          []string
}

func (f Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

// Clone returns a copy that shares no slices with f.
func (f Flight) Clone() Flight {
	f.Amenities = slices.Clone(f.Amenities)
	f.Promos = slices.Clone(f.Promos)
	return f
}

func CloneFlights(flights []Flight) []Flight {
	if flights == nil {
		return nil
	}
	out := make([]Flight, len(flights))
	for i, f := range flights {
		out[i] = f.Clone()
	}
	return out
}
