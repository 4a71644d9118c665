package inbound

import (
	"context"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goflightstore/internal/storefront/airport"
	"github.com/shandysiswandi/goflightstore/internal/storefront/checkout"
	"github.com/shandysiswandi/goflightstore/internal/storefront/criteria"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/results"
	"github.com/shandysiswandi/goflightstore/internal/storefront/usecase"
)

type uc interface {
	CreateSession(ctx context.Context, clientID string) *usecase.Session
	EndSession(ctx context.Context, id string) error

	SearchAirports(ctx context.Context, sessionID, query string, kind entity.FieldKind) ([]entity.Airport, error)
	InputAirport(sessionID string, kind entity.FieldKind, query string) (airport.Suggestion, error)
	AirportSuggestions(sessionID string, kind entity.FieldKind) (airport.Suggestion, error)
	SelectAirport(ctx context.Context, sessionID string, kind entity.FieldKind, code string) (entity.Airport, error)

	UpdateCriteria(sessionID string, in usecase.CriteriaInput) (criteria.Draft, error)
	SwapCriteria(sessionID string) (criteria.Draft, error)
	Criteria(sessionID string) (criteria.Draft, error)

	Search(ctx context.Context, sessionID string) (results.Snapshot, error)
	CancelSearch(sessionID string) (results.Snapshot, error)
	Results(sessionID string, filters results.FilterState, key results.SortKey) (usecase.ResultsOutput, error)
	Airlines(ctx context.Context) usecase.AirlinesOutput

	Fares(sessionID, flightID string) (usecase.FaresOutput, error)
	SelectFare(sessionID, flightID, tierID string) (usecase.SelectionOutput, error)
	Selection(sessionID string) (usecase.SelectionOutput, error)
	ClearSelection(sessionID string) error

	Checkout(ctx context.Context, sessionID, userID string) (checkout.Receipt, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/sessions", end.CreateSession)
	r.DELETE("/sessions", end.EndSession)

	r.GET("/airports", end.SearchAirports)
	r.PUT("/airports/input", end.InputAirport)
	r.GET("/airports/suggestions", end.AirportSuggestions)
	r.POST("/airports/recent", end.SelectAirport)

	r.GET("/criteria", end.Criteria)
	r.PUT("/criteria", end.UpdateCriteria)
	r.POST("/criteria/swap", end.SwapCriteria)

	r.POST("/search", end.Search)
	r.DELETE("/search", end.CancelSearch)
	r.GET("/results", end.Results)
	r.GET("/airlines", end.Airlines)

	r.GET("/flights/{id}/fares", end.Fares)
	r.GET("/selection", end.Selection)
	r.POST("/selection", end.SelectFare)
	r.DELETE("/selection", end.ClearSelection)

	r.POST("/checkout", end.Checkout)
}
