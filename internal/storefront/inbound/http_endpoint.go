package inbound

import (
	"context"
	"net/http"
	"strings"
)

const HeaderSessionID = "X-Session-ID"

type HTTPEndpoint struct {
	uc uc
}

func sessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderSessionID))
}

func (h *HTTPEndpoint) CreateSession(ctx context.Context, r *http.Request) (any, error) {
	var req CreateSessionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		return nil, err
	}
	s := h.uc.CreateSession(ctx, req.ClientID)
	return SessionResponse{SessionID: s.ID, Owner: s.Owner}, nil
}

func (h *HTTPEndpoint) EndSession(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.EndSession(ctx, sessionID(r)); err != nil {
		return nil, err
	}
	return MessageResponse{Message: "session ended"}, nil
}

func (h *HTTPEndpoint) SearchAirports(ctx context.Context, r *http.Request) (any, error) {
	q := r.URL.Query()
	airports, err := h.uc.SearchAirports(ctx, sessionID(r), q.Get("q"), fieldKind(q.Get("field")))
	if err != nil {
		return nil, err
	}
	return AirportsResponse{Airports: mapAirports(airports)}, nil
}

func (h *HTTPEndpoint) InputAirport(_ context.Context, r *http.Request) (any, error) {
	var req AirportInputRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	sug, err := h.uc.InputAirport(sessionID(r), fieldKind(req.Field), req.Query)
	if err != nil {
		return nil, err
	}
	return mapSuggestion(sug), nil
}

func (h *HTTPEndpoint) AirportSuggestions(_ context.Context, r *http.Request) (any, error) {
	sug, err := h.uc.AirportSuggestions(sessionID(r), fieldKind(r.URL.Query().Get("field")))
	if err != nil {
		return nil, err
	}
	return mapSuggestion(sug), nil
}

func (h *HTTPEndpoint) SelectAirport(ctx context.Context, r *http.Request) (any, error) {
	var req SelectAirportRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	a, err := h.uc.SelectAirport(ctx, sessionID(r), fieldKind(req.Field), req.Code)
	if err != nil {
		return nil, err
	}
	return mapAirport(a), nil
}

func (h *HTTPEndpoint) Criteria(_ context.Context, r *http.Request) (any, error) {
	d, err := h.uc.Criteria(sessionID(r))
	if err != nil {
		return nil, err
	}
	return mapDraft(d), nil
}

func (h *HTTPEndpoint) UpdateCriteria(_ context.Context, r *http.Request) (any, error) {
	var req CriteriaRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	d, err := h.uc.UpdateCriteria(sessionID(r), req.input())
	if err != nil {
		return nil, err
	}
	return mapDraft(d), nil
}

func (h *HTTPEndpoint) SwapCriteria(_ context.Context, r *http.Request) (any, error) {
	d, err := h.uc.SwapCriteria(sessionID(r))
	if err != nil {
		return nil, err
	}
	return mapDraft(d), nil
}

func (h *HTTPEndpoint) Search(ctx context.Context, r *http.Request) (any, error) {
	snap, err := h.uc.Search(ctx, sessionID(r))
	if err != nil {
		return nil, err
	}
	return mapSnapshot(snap), nil
}

func (h *HTTPEndpoint) CancelSearch(_ context.Context, r *http.Request) (any, error) {
	snap, err := h.uc.CancelSearch(sessionID(r))
	if err != nil {
		return nil, err
	}
	return mapSnapshot(snap), nil
}

func (h *HTTPEndpoint) Results(_ context.Context, r *http.Request) (any, error) {
	filters, key, err := parseResultsQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}

	out, err := h.uc.Results(sessionID(r), filters, key)
	if err != nil {
		return nil, err
	}

	return ResultsResponse{
		Status:  string(out.Snapshot.Status),
		Sort:    string(key),
		Total:   out.Total,
		Count:   len(out.Flights),
		Flights: mapFlights(out.Flights),
	}, nil
}

func (h *HTTPEndpoint) Airlines(ctx context.Context, _ *http.Request) (any, error) {
	out := h.uc.Airlines(ctx)
	airlines := make([]AirlineResponse, 0, len(out.Airlines))
	for _, a := range out.Airlines {
		airlines = append(airlines, mapAirline(a))
	}
	return AirlinesResponse{Airlines: airlines, Fallback: out.Fallback}, nil
}

func (h *HTTPEndpoint) Fares(_ context.Context, r *http.Request) (any, error) {
	out, err := h.uc.Fares(sessionID(r), r.PathValue("id"))
	if err != nil {
		return nil, err
	}

	tiers := make([]FareTierResponse, 0, len(out.Tiers))
	for _, t := range out.Tiers {
		tiers = append(tiers, mapFareTier(t))
	}
	return FaresResponse{Flight: mapFlight(out.Flight), Tiers: tiers}, nil
}

func (h *HTTPEndpoint) SelectFare(_ context.Context, r *http.Request) (any, error) {
	var req SelectFareRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	out, err := h.uc.SelectFare(sessionID(r), string(req.FlightID), req.FareTierID)
	if err != nil {
		return nil, err
	}
	return mapSelection(out), nil
}

func (h *HTTPEndpoint) Selection(_ context.Context, r *http.Request) (any, error) {
	out, err := h.uc.Selection(sessionID(r))
	if err != nil {
		return nil, err
	}
	return mapSelection(out), nil
}

func (h *HTTPEndpoint) ClearSelection(_ context.Context, r *http.Request) (any, error) {
	if err := h.uc.ClearSelection(sessionID(r)); err != nil {
		return nil, err
	}
	return SelectionResponse{Selected: false}, nil
}

func (h *HTTPEndpoint) Checkout(ctx context.Context, r *http.Request) (any, error) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	receipt, err := h.uc.Checkout(ctx, sessionID(r), string(req.UserID))
	if err != nil {
		return nil, err
	}
	return CheckoutResponse{Success: true, Message: receipt.Message}, nil
}
