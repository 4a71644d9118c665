// Package fare expands a catalog flight into its purchasable fare tiers.
package fare

import (
	"fmt"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shopspring/decimal"
)

type plan struct {
	tag           entity.FareTag
	name          string
	multiplier    decimal.Decimal
	cabinKg       int
	minCheckedKg  int
	refundable    bool
	reschedulable bool
	perks         []string
}

// Value and Flexi take at least this much checked baggage even when the
// flight itself includes less.
var plans = [3]plan{
	{
		tag:        entity.FareBasic,
		name:       "Basic",
		multiplier: decimal.NewFromInt(1),
		cabinKg:    7,
		perks:      []string{"Seat assigned at check-in"},
	},
	{
		tag:           entity.FareValue,
		name:          "Value",
		multiplier:    decimal.RequireFromString("1.12"),
		cabinKg:       7,
		minCheckedKg:  20,
		reschedulable: true,
		perks:         []string{"Free seat selection", "Reschedule with fare difference"},
	},
	{
		tag:           entity.FareFlexi,
		name:          "Flexi",
		multiplier:    decimal.RequireFromString("1.25"),
		cabinKg:       10,
		minCheckedKg:  30,
		refundable:    true,
		reschedulable: true,
		perks:         []string{"Free seat selection", "Free reschedule", "Full refund", "Priority boarding"},
	},
}

// DeriveTiers returns Basic, Value and Flexi in that order. Prices are
// base*1.00, base*1.12 and base*1.25 rounded half away from zero to the
// smallest currency unit.
func DeriveTiers(f entity.Flight) []entity.FareTier {
	base := decimal.NewFromInt(f.Price)
	tiers := make([]entity.FareTier, 0, len(plans))
	for _, p := range plans {
		tiers = append(tiers, entity.FareTier{
			ID:               TierID(f.ID, p.tag),
			Tag:              p.tag,
			Name:             p.name,
			Price:            base.Mul(p.multiplier).Round(0).IntPart(),
			CabinBaggageKg:   p.cabinKg,
			CheckedBaggageKg: max(f.BaggageKg, p.minCheckedKg),
			IsRefundable:     p.refundable || f.IsRefundable,
			IsReschedulable:  p.reschedulable || f.IsReschedulable,
			Perks:            append([]string(nil), p.perks...),
		})
	}
	return tiers
}

func TierID(flightID string, tag entity.FareTag) string {
	return fmt.Sprintf("%s-%s", flightID, tag)
}

// Select lays the chosen tier over a copy of f. f is not modified.
func Select(f entity.Flight, tierID string) (entity.SelectedFlight, error) {
	for _, t := range DeriveTiers(f) {
		if t.ID != tierID {
			continue
		}
		return Apply(f, t), nil
	}
	return entity.SelectedFlight{}, pkgerror.NewValidation("fare_tier_id", "fare option is not offered for this flight")
}

// Apply overlays t on a copy of f.
func Apply(f entity.Flight, t entity.FareTier) entity.SelectedFlight {
	overlay := f.Clone()
	overlay.Price = t.Price
	overlay.BaggageKg = t.CheckedBaggageKg
	overlay.IsRefundable = t.IsRefundable
	overlay.IsReschedulable = t.IsReschedulable

	return entity.SelectedFlight{
		Flight:         overlay,
		CabinBaggageKg: t.CabinBaggageKg,
		FareTierID:     t.ID,
		FareTag:        t.Tag,
		FareName:       t.Name,
		BasePrice:      f.Price,
	}
}
