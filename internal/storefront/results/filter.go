package results

import (
	"sort"
	"strings"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

type TimeBucket string

const (
	Morning   TimeBucket = "morning"
	Afternoon TimeBucket = "afternoon"
	Evening   TimeBucket = "evening"
)

// contains reports whether hour falls in the bucket's [from, to) range.
// Hours before 06:00 belong to no bucket.
func (b TimeBucket) contains(hour int) bool {
	switch b {
	case Morning:
		return hour >= 6 && hour < 12
	case Afternoon:
		return hour >= 12 && hour < 18
	case Evening:
		return hour >= 18 && hour < 24
	default:
		return false
	}
}

func (b TimeBucket) Valid() bool {
	return b == Morning || b == Afternoon || b == Evening
}

type SortKey string

const (
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortDepartureAsc SortKey = "departure_asc"
	SortDurationAsc  SortKey = "duration_asc"

	DefaultSort = SortPriceAsc
)

func (k SortKey) Valid() bool {
	switch k {
	case SortPriceAsc, SortPriceDesc, SortDepartureAsc, SortDurationAsc:
		return true
	default:
		return false
	}
}

// FilterState is a set of optional predicates. A nil or empty field places
// no constraint; the zero value keeps every flight.
type FilterState struct {
	MaxPrice         *int64
	DepartureBuckets []TimeBucket
	Airlines         []string
	DirectOnly       bool
}

func (f FilterState) IsZero() bool {
	return f.MaxPrice == nil && len(f.DepartureBuckets) == 0 && len(f.Airlines) == 0 && !f.DirectOnly
}

// Apply keeps the flights that pass every present predicate and orders them
// by key. Ties keep their input order. An unknown key sorts by DefaultSort.
// The input slice is not modified.
func Apply(flights []entity.Flight, filters FilterState, key SortKey) []entity.Flight {
	airlineFilter := normalizeSet(filters.Airlines)

	filtered := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		if !matchFilter(f, filters, airlineFilter) {
			continue
		}
		filtered = append(filtered, f.Clone())
	}

	sortFlights(filtered, key)
	return filtered
}

func matchFilter(f entity.Flight, filters FilterState, airlineFilter map[string]struct{}) bool {
	if filters.MaxPrice != nil && f.Price > *filters.MaxPrice {
		return false
	}
	if filters.DirectOnly && f.Stops != 0 {
		return false
	}
	if !matchAirlineFilter(f, airlineFilter) {
		return false
	}
	return matchTimeFilter(f, filters.DepartureBuckets)
}

func matchAirlineFilter(f entity.Flight, airlineFilter map[string]struct{}) bool {
	if len(airlineFilter) == 0 {
		return true
	}
	_, ok := airlineFilter[strings.ToLower(f.Airline.Code)]
	return ok
}

// matchTimeFilter uses the departure hour in the departure airport's own
// zone, as carried by the timestamp.
func matchTimeFilter(f entity.Flight, buckets []TimeBucket) bool {
	if len(buckets) == 0 {
		return true
	}
	hour := f.DepartureTime.Hour()
	for _, b := range buckets {
		if b.contains(hour) {
			return true
		}
	}
	return false
}

func sortFlights(flights []entity.Flight, key SortKey) {
	if !key.Valid() {
		key = DefaultSort
	}

	var less func(a, b entity.Flight) bool
	switch key {
	case SortPriceDesc:
		less = func(a, b entity.Flight) bool { return a.Price > b.Price }
	case SortDepartureAsc:
		less = func(a, b entity.Flight) bool { return a.DepartureTime.Before(b.DepartureTime) }
	case SortDurationAsc:
		less = func(a, b entity.Flight) bool { return a.Duration() < b.Duration() }
	default:
		less = func(a, b entity.Flight) bool { return a.Price < b.Price }
	}

	sort.SliceStable(flights, func(i, j int) bool { return less(flights[i], flights[j]) })
}

func normalizeSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		value := strings.ToLower(strings.TrimSpace(v))
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}
