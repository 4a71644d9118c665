package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// Providers disagree on how they spell numbers and instants, so every field
// that may arrive as either a JSON number or a string decodes through one of
// the flex types below.

type flexInt int64

func (v *flexInt) UnmarshalJSON(data []byte) error {
	raw, _ := unquote(data)
	if raw == "" {
		*v = 0
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*v = flexInt(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("number %q: %w", raw, err)
	}
	*v = flexInt(f)
	return nil
}

type flexString string

func (v *flexString) UnmarshalJSON(data []byte) error {
	raw, _ := unquote(data)
	*v = flexString(raw)
	return nil
}

type flexBool bool

func (v *flexBool) UnmarshalJSON(data []byte) error {
	raw, _ := unquote(data)
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		*v = false
	case "1", "true", "yes":
		*v = true
	default:
		return fmt.Errorf("bool %q", raw)
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

// flexTime accepts RFC 3339, a numeric zone offset without colon, or unix
// seconds as a number or string. Zone-less layouts parse as UTC.
type flexTime time.Time

func (v *flexTime) UnmarshalJSON(data []byte) error {
	raw, _ := unquote(data)
	if raw == "" {
		*v = flexTime(time.Time{})
		return nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*v = flexTime(time.Unix(secs, 0).UTC())
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*v = flexTime(t)
			return nil
		}
	}
	return fmt.Errorf("time %q: unsupported layout", raw)
}

func (v flexTime) Time() time.Time { return time.Time(v) }

func unquote(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", false
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return strings.TrimSpace(s), true
		}
	}
	return string(data), false
}

type wireAirline struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type wirePoint struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type wireFlight struct {
	ID              flexString  `json:"id"`
	Airline         wireAirline `json:"airline"`
	FlightNumber    flexString  `json:"flight_number"`
	Origin          wirePoint   `json:"origin"`
	Destination     wirePoint   `json:"destination"`
	DepartureTime   flexTime    `json:"departure_time"`
	ArrivalTime     flexTime    `json:"arrival_time"`
	Price           flexInt     `json:"price"`
	Stops           flexInt     `json:"stops"`
	IsRefundable    flexBool    `json:"is_refundable"`
	IsReschedulable flexBool    `json:"is_reschedulable"`
	BaggageKg       flexInt     `json:"baggage_kg"`
	Amenities       []string    `json:"amenities"`
	Promos          []string    `json:"promos"`
}

type wireResponse struct {
	Flights []wireFlight `json:"flights"`
}

func decodeFlights(data []byte) ([]wireFlight, error) {
	var resp wireResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode flights: %w", err)
	}
	return resp.Flights, nil
}

// normalize maps wire rows onto the canonical shape and drops the rows that
// do not fly the requested route or whose arrival is not after departure.
func normalize(c entity.SearchCriteria, rows []wireFlight) []entity.Flight {
	flights := make([]entity.Flight, 0, len(rows))
	for _, r := range rows {
		f := entity.Flight{
			ID:              strings.TrimSpace(string(r.ID)),
			Airline:         entity.Airline{Code: strings.ToUpper(strings.TrimSpace(r.Airline.Code)), Name: r.Airline.Name, Logo: r.Airline.Logo},
			FlightNumber:    string(r.FlightNumber),
			Origin:          point(r.Origin),
			Destination:     point(r.Destination),
			DepartureTime:   r.DepartureTime.Time(),
			ArrivalTime:     r.ArrivalTime.Time(),
			Price:           int64(r.Price),
			Stops:           int(r.Stops),
			IsRefundable:    bool(r.IsRefundable),
			IsReschedulable: bool(r.IsReschedulable),
			BaggageKg:       int(r.BaggageKg),
			Amenities:       nonNil(r.Amenities),
			Promos:          nonNil(r.Promos),
		}

		if f.ID == "" || f.Price < 0 || f.Stops < 0 {
			continue
		}
		if !strings.EqualFold(f.Origin.Code, c.OriginCode) || !strings.EqualFold(f.Destination.Code, c.DestinationCode) {
			continue
		}
		if f.DepartureTime.IsZero() || !f.ArrivalTime.After(f.DepartureTime) {
			continue
		}
		if f.BaggageKg < 0 {
			f.BaggageKg = 0
		}

		flights = append(flights, f)
	}
	return flights
}

func point(p wirePoint) entity.FlightPoint {
	return entity.FlightPoint{
		Code:    strings.ToUpper(strings.TrimSpace(p.Code)),
		Name:    p.Name,
		City:    p.City,
		Country: p.Country,
	}
}

func nonNil(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
