package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goflightstore/internal/storefront/checkout"
)

// Checkout finalizes the session's selection for userID. Only a successful
// purchase clears the selection and the result view; on failure both stay
// so the shopper can retry.
func (u *Usecase) Checkout(ctx context.Context, sessionID, userID string) (checkout.Receipt, error) {
	s, err := u.Session(sessionID)
	if err != nil {
		return checkout.Receipt{}, err
	}

	sel := u.selectionOf(s)
	receipt, err := u.finalizer.Finalize(ctx, checkout.Input{
		UserID:     userID,
		Selection:  sel.Selected,
		Passengers: sel.Passengers,
		TripType:   sel.TripType,
	})
	if err != nil {
		return checkout.Receipt{}, err
	}

	s.Selection.Clear()
	s.View.Reset()
	slog.InfoContext(ctx, "purchase finalized", "session_id", s.ID, "flight_id", sel.Selected.ID)
	return receipt, nil
}
