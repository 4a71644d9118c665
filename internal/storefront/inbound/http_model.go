package inbound

import "github.com/shandysiswandi/goflightstore/internal/storefront/usecase"

type CreateSessionRequest struct {
	ClientID string `json:"client_id"`
}

type AirportInputRequest struct {
	Field string `json:"field"`
	Query string `json:"q"`
}

type SelectAirportRequest struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

type PassengersRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// CriteriaRequest is a partial update; omitted fields keep their value.
// Origin and destination take an airport code or free text.
type CriteriaRequest struct {
	Origin        *string            `json:"origin"`
	Destination   *string            `json:"destination"`
	DepartureDate *string            `json:"departure_date"`
	ReturnDate    *string            `json:"return_date"`
	TripType      *string            `json:"trip_type"`
	Passengers    *PassengersRequest `json:"passengers"`
	CabinClass    *string            `json:"cabin_class"`
}

func (c CriteriaRequest) input() usecase.CriteriaInput {
	in := usecase.CriteriaInput{
		Origin:        c.Origin,
		Destination:   c.Destination,
		DepartureDate: c.DepartureDate,
		ReturnDate:    c.ReturnDate,
		TripType:      c.TripType,
		CabinClass:    c.CabinClass,
	}
	if c.Passengers != nil {
		p := passengersOf(*c.Passengers)
		in.Passengers = &p
	}
	return in
}

type SelectFareRequest struct {
	FlightID   looseID `json:"flight_id"`
	FareTierID string  `json:"fare_tier_id"`
}

type CheckoutRequest struct {
	UserID looseID `json:"user_id"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Owner     string `json:"owner"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AirportResponse struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"description,omitempty"`
}

type AirportsResponse struct {
	Airports []AirportResponse `json:"airports"`
}

type SuggestionResponse struct {
	Query    string            `json:"q"`
	Status   string            `json:"status"`
	Airports []AirportResponse `json:"airports"`
}

type EndpointResponse struct {
	Display  string           `json:"display"`
	Resolved bool             `json:"resolved"`
	Airport  *AirportResponse `json:"airport,omitempty"`
}

type PassengersResponse struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
	Total    int `json:"total"`
}

type CriteriaResponse struct {
	Origin        EndpointResponse   `json:"origin"`
	Destination   EndpointResponse   `json:"destination"`
	DepartureDate *string            `json:"departure_date"`
	ReturnDate    *string            `json:"return_date"`
	TripType      string             `json:"trip_type"`
	Passengers    PassengersResponse `json:"passengers"`
	CabinClass    string             `json:"cabin_class"`
}

type SearchCriteriaResponse struct {
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	DepartureDate string             `json:"departure_date"`
	ReturnDate    *string            `json:"return_date,omitempty"`
	TripType      string             `json:"trip_type"`
	Passengers    PassengersResponse `json:"passengers"`
	CabinClass    string             `json:"cabin_class"`
}

type SearchResponse struct {
	Status   string                  `json:"status"`
	Criteria *SearchCriteriaResponse `json:"criteria,omitempty"`
	Count    int                     `json:"count"`
}

type ResultsResponse struct {
	Status  string           `json:"status"`
	Sort    string           `json:"sort"`
	Total   int              `json:"total"`
	Count   int              `json:"count"`
	Flights []FlightResponse `json:"flights"`
}

type AirlineResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type AirlinesResponse struct {
	Airlines []AirlineResponse `json:"airlines"`
	Fallback bool              `json:"fallback"`
}

type FlightPoint struct {
	Code    string `json:"code"`
	Name    string `json:"name,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type DurationResponse struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

type PriceResponse struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type FlightResponse struct {
	ID              string           `json:"id"`
	Airline         AirlineResponse  `json:"airline"`
	FlightNumber    string           `json:"flight_number"`
	Origin          FlightPoint      `json:"origin"`
	Destination     FlightPoint      `json:"destination"`
	DepartureTime   string           `json:"departure_time"`
	ArrivalTime     string           `json:"arrival_time"`
	Duration        DurationResponse `json:"duration"`
	Price           PriceResponse    `json:"price"`
	Stops           int              `json:"stops"`
	IsRefundable    bool             `json:"is_refundable"`
	IsReschedulable bool             `json:"is_reschedulable"`
	BaggageKg       int              `json:"baggage_kg"`
	Amenities       []string         `json:"amenities"`
	Promos          []string         `json:"promos"`
}

type FareTierResponse struct {
	ID               string        `json:"id"`
	Tag              string        `json:"tag"`
	Name             string        `json:"name"`
	Price            PriceResponse `json:"price"`
	CabinBaggageKg   int           `json:"cabin_baggage_kg"`
	CheckedBaggageKg int           `json:"checked_baggage_kg"`
	IsRefundable     bool          `json:"is_refundable"`
	IsReschedulable  bool          `json:"is_reschedulable"`
	Perks            []string      `json:"perks"`
}

type FaresResponse struct {
	Flight FlightResponse     `json:"flight"`
	Tiers  []FareTierResponse `json:"tiers"`
}

type FareResponse struct {
	TierID         string `json:"tier_id"`
	Tag            string `json:"tag"`
	Name           string `json:"name"`
	CabinBaggageKg int    `json:"cabin_baggage_kg"`
}

type SelectionResponse struct {
	Selected   bool                `json:"selected"`
	Flight     *FlightResponse     `json:"flight,omitempty"`
	Fare       *FareResponse       `json:"fare,omitempty"`
	BasePrice  *PriceResponse      `json:"base_price,omitempty"`
	Passengers *PassengersResponse `json:"passengers,omitempty"`
	TripType   string              `json:"trip_type,omitempty"`
	Total      *PriceResponse      `json:"total,omitempty"`
}

type CheckoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
