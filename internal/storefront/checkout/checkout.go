package checkout

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

var (
	ErrInvalidSession         = pkgerror.NewValidation("user_id", "your session is not valid, please sign in again")
	ErrNoFlightSelected       = pkgerror.NewValidation("selection", "no flight has been selected")
	ErrInvalidFlightReference = pkgerror.NewValidation("flight_id", "the selected flight cannot be booked")
)

// Request is the payload sent to the purchase service.
type Request struct {
	UserID         int64           `json:"user_id"`
	FlightID       int64           `json:"flight_id"`
	FareTierCode   string          `json:"fare_tier_code"`
	PassengerCount int             `json:"passenger_count"`
	TripType       entity.TripType `json:"trip_type"`
}

type Receipt struct {
	Message string
}

// Client submits a purchase. Implementations return a Remote error when the
// service answers with a rejection and a Fetch error when it cannot be
// reached.
type Client interface {
	Finalize(ctx context.Context, req Request) (Receipt, error)
}

type Input struct {
	UserID     string
	Selection  *entity.SelectedFlight
	Passengers entity.Passengers
	TripType   entity.TripType
}

type Finalizer struct {
	client Client
}

func NewFinalizer(client Client) *Finalizer {
	return &Finalizer{client: client}
}

// Finalize checks the session and selection locally and, only when both
// hold, sends exactly one purchase request. It never retries and never
// clears the selection.
func (f *Finalizer) Finalize(ctx context.Context, in Input) (Receipt, error) {
	req, err := buildRequest(in)
	if err != nil {
		return Receipt{}, err
	}

	receipt, err := f.client.Finalize(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "finalize purchase failed",
			"user_id", req.UserID,
			"flight_id", req.FlightID,
			"error", err,
		)
		return Receipt{}, err
	}
	return receipt, nil
}

func buildRequest(in Input) (Request, error) {
	userID, ok := positiveInt(in.UserID)
	if !ok {
		return Request{}, ErrInvalidSession
	}
	if in.Selection == nil {
		return Request{}, ErrNoFlightSelected
	}
	flightID, ok := positiveInt(in.Selection.ID)
	if !ok {
		return Request{}, ErrInvalidFlightReference
	}

	trip := in.TripType
	if !trip.Valid() {
		trip = entity.TripOneWay
	}
	count := in.Passengers.Total()
	if count < 1 {
		count = 1
	}

	return Request{
		UserID:         userID,
		FlightID:       flightID,
		FareTierCode:   string(in.Selection.FareTag),
		PassengerCount: count,
		TripType:       trip,
	}, nil
}

func positiveInt(value string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
