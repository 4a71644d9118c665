package inbound

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/airport"
	"github.com/shandysiswandi/goflightstore/internal/storefront/criteria"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/results"
	"github.com/shandysiswandi/goflightstore/internal/storefront/usecase"
)

const (
	maxBodyBytes = 1 << 20
	currencyIDR  = "IDR"
)

var errInvalidBody = pkgerror.NewValidation("body", "request body must be valid JSON")

// looseID accepts an identifier sent as a JSON string or number.
type looseID string

func (l *looseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = looseID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*l = looseID(n.String())
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errInvalidBody
}

func fieldKind(value string) entity.FieldKind {
	return entity.FieldKind(strings.ToLower(strings.TrimSpace(value)))
}

func parseResultsQuery(q url.Values) (results.FilterState, results.SortKey, error) {
	filters := results.FilterState{}

	if value := strings.TrimSpace(firstNotEmpty(q.Get("max_price"), q.Get("maxPrice"))); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed < 0 {
			return filters, "", pkgerror.NewValidation("max_price", "invalid max_price")
		}
		filters.MaxPrice = &parsed
	}

	for _, value := range parseListFilter(q, "departure", "departure_time") {
		bucket := results.TimeBucket(strings.ToLower(value))
		if !bucket.Valid() {
			return filters, "", pkgerror.NewValidation("departure", "departure must be morning, afternoon or evening")
		}
		filters.DepartureBuckets = append(filters.DepartureBuckets, bucket)
	}

	filters.Airlines = parseListFilter(q, "airlines", "airline")

	if value := strings.TrimSpace(firstNotEmpty(q.Get("direct_only"), q.Get("directOnly"))); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return filters, "", pkgerror.NewValidation("direct_only", "invalid direct_only")
		}
		filters.DirectOnly = parsed
	}

	key := results.DefaultSort
	if value := strings.ToLower(strings.TrimSpace(q.Get("sort"))); value != "" {
		key = results.SortKey(value)
		if !key.Valid() {
			return filters, "", pkgerror.NewValidation("sort", "sort must be price_asc, price_desc, departure_asc or duration_asc")
		}
	}

	return filters, key, nil
}

func parseListFilter(q url.Values, key, altKey string) []string {
	value := strings.TrimSpace(firstNotEmpty(q.Get(key), q.Get(altKey)))
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNotEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func passengersOf(p PassengersRequest) entity.Passengers {
	return entity.Passengers{Adults: p.Adults, Children: p.Children, Infants: p.Infants}
}

func mapPassengers(p entity.Passengers) PassengersResponse {
	return PassengersResponse{Adults: p.Adults, Children: p.Children, Infants: p.Infants, Total: p.Total()}
}

func mapAirport(a entity.Airport) AirportResponse {
	return AirportResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		City:        a.City,
		Country:     a.Country,
		Description: a.Description,
	}
}

func mapAirports(airports []entity.Airport) []AirportResponse {
	resp := make([]AirportResponse, 0, len(airports))
	for _, a := range airports {
		resp = append(resp, mapAirport(a))
	}
	return resp
}

func mapSuggestion(s airport.Suggestion) SuggestionResponse {
	return SuggestionResponse{Query: s.Query, Status: string(s.Status), Airports: mapAirports(s.Airports)}
}

func mapEndpoint(e criteria.Endpoint) EndpointResponse {
	resp := EndpointResponse{Display: e.Display, Resolved: e.Resolved()}
	if e.Airport != nil {
		a := mapAirport(*e.Airport)
		resp.Airport = &a
	}
	return resp
}

func mapDraft(d criteria.Draft) CriteriaResponse {
	return CriteriaResponse{
		Origin:        mapEndpoint(d.Origin),
		Destination:   mapEndpoint(d.Destination),
		DepartureDate: formatOptionalDate(d.DepartureDate),
		ReturnDate:    formatOptionalDate(d.ReturnDate),
		TripType:      string(d.TripType),
		Passengers:    mapPassengers(d.Passengers),
		CabinClass:    string(d.CabinClass),
	}
}

func mapSnapshot(s results.Snapshot) SearchResponse {
	resp := SearchResponse{Status: string(s.Status), Count: len(s.Flights)}
	if s.Criteria != nil {
		resp.Criteria = &SearchCriteriaResponse{
			Origin:        s.Criteria.OriginCode,
			Destination:   s.Criteria.DestinationCode,
			DepartureDate: s.Criteria.DepartureDate.Format(entity.DateLayout),
			ReturnDate:    formatOptionalDate(s.Criteria.ReturnDate),
			TripType:      string(s.Criteria.TripType),
			Passengers:    mapPassengers(s.Criteria.Passengers),
			CabinClass:    string(s.Criteria.CabinClass),
		}
	}
	return resp
}

func mapAirline(a entity.Airline) AirlineResponse {
	return AirlineResponse{Code: a.Code, Name: a.Name, Logo: a.Logo}
}

func mapFlightPoint(p entity.FlightPoint) FlightPoint {
	return FlightPoint{Code: p.Code, Name: p.Name, City: p.City, Country: p.Country}
}

func mapPrice(amount int64) PriceResponse {
	return PriceResponse{Amount: amount, Currency: currencyIDR, Formatted: formatIDR(amount)}
}

func mapFlight(f entity.Flight) FlightResponse {
	return FlightResponse{
		ID:              f.ID,
		Airline:         mapAirline(f.Airline),
		FlightNumber:    f.FlightNumber,
		Origin:          mapFlightPoint(f.Origin),
		Destination:     mapFlightPoint(f.Destination),
		DepartureTime:   f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:     f.ArrivalTime.Format(time.RFC3339),
		Duration:        DurationResponse{TotalMinutes: int(f.Duration().Minutes()), Formatted: formatDuration(f.Duration())},
		Price:           mapPrice(f.Price),
		Stops:           f.Stops,
		IsRefundable:    f.IsRefundable,
		IsReschedulable: f.IsReschedulable,
		BaggageKg:       f.BaggageKg,
		Amenities:       append([]string{}, f.Amenities...),
		Promos:          append([]string{}, f.Promos...),
	}
}

func mapFlights(flights []entity.Flight) []FlightResponse {
	resp := make([]FlightResponse, 0, len(flights))
	for _, f := range flights {
		resp = append(resp, mapFlight(f))
	}
	return resp
}

func mapFareTier(t entity.FareTier) FareTierResponse {
	return FareTierResponse{
		ID:               t.ID,
		Tag:              string(t.Tag),
		Name:             t.Name,
		Price:            mapPrice(t.Price),
		CabinBaggageKg:   t.CabinBaggageKg,
		CheckedBaggageKg: t.CheckedBaggageKg,
		IsRefundable:     t.IsRefundable,
		IsReschedulable:  t.IsReschedulable,
		Perks:            append([]string{}, t.Perks...),
	}
}

// mapSelection builds the summary shown on every page after a fare is
// chosen. Total is the tier price for each traveller.
func mapSelection(out usecase.SelectionOutput) SelectionResponse {
	if out.Selected == nil {
		return SelectionResponse{Selected: false}
	}
	sel := out.Selected
	flight := mapFlight(sel.Flight)
	base := mapPrice(sel.BasePrice)
	passengers := mapPassengers(out.Passengers)

	travellers := int64(max(out.Passengers.Total(), 1))
	total := mapPrice(sel.Price * travellers)

	return SelectionResponse{
		Selected: true,
		Flight:   &flight,
		Fare: &FareResponse{
			TierID:         sel.FareTierID,
			Tag:            string(sel.FareTag),
			Name:           sel.FareName,
			CabinBaggageKg: sel.CabinBaggageKg,
		},
		BasePrice:  &base,
		Passengers: &passengers,
		TripType:   string(out.TripType),
		Total:      &total,
	}
}

func formatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	s := value.Format(entity.DateLayout)
	return &s
}

func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func formatIDR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	value := strconv.FormatInt(amount, 10)
	for i := len(value) - 3; i > 0; i -= 3 {
		value = value[:i] + "." + value[i:]
	}
	if negative {
		return "-Rp " + value
	}
	return "Rp " + value
}
