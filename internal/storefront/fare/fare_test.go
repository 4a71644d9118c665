package fare

import (
	"testing"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flight(price int64, baggageKg int) entity.Flight {
	dep := time.Date(2026, 3, 1, 6, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	return entity.Flight{
		ID:            "4021",
		Airline:       entity.Airline{Code: "GA", Name: "Garuda Indonesia"},
		FlightNumber:  "GA402",
		Origin:        entity.FlightPoint{Code: "CGK"},
		Destination:   entity.FlightPoint{Code: "DPS"},
		DepartureTime: dep,
		ArrivalTime:   dep.Add(110 * time.Minute),
		Price:         price,
		BaggageKg:     baggageKg,
		Amenities:     []string{"meal"},
		Promos:        []string{"direct"},
	}
}

func prices(tiers []entity.FareTier) []int64 {
	out := make([]int64, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, t.Price)
	}
	return out
}

func TestDeriveTiers_MillionRupiah(t *testing.T) {
	tiers := DeriveTiers(flight(1_000_000, 0))

	require.Len(t, tiers, 3)
	assert.Equal(t, []int64{1_000_000, 1_120_000, 1_250_000}, prices(tiers))
	assert.Equal(t, []entity.FareTag{entity.FareBasic, entity.FareValue, entity.FareFlexi},
		[]entity.FareTag{tiers[0].Tag, tiers[1].Tag, tiers[2].Tag})
	assert.Equal(t, "4021-basic", tiers[0].ID)
	assert.Equal(t, "Flexi", tiers[2].Name)

	assert.False(t, tiers[0].IsRefundable)
	assert.False(t, tiers[0].IsReschedulable)
	assert.False(t, tiers[1].IsRefundable)
	assert.True(t, tiers[1].IsReschedulable)
	assert.True(t, tiers[2].IsRefundable)
	assert.True(t, tiers[2].IsReschedulable)

	assert.Equal(t, []int{0, 20, 30}, []int{tiers[0].CheckedBaggageKg, tiers[1].CheckedBaggageKg, tiers[2].CheckedBaggageKg})
	assert.Equal(t, []int{7, 7, 10}, []int{tiers[0].CabinBaggageKg, tiers[1].CabinBaggageKg, tiers[2].CabinBaggageKg})
}

func TestDeriveTiers_Rounding(t *testing.T) {
	tests := []struct {
		base  int64
		value int64
		flexi int64
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, 3},       // 2.24, 2.5 rounds up
		{4, 4, 5},       // 4.48, 5.0
		{25, 28, 31},    // 28.0, 31.25
		{50, 56, 63},    // 56.0, 62.5 rounds up
		{125, 140, 156}, // 140.0, 156.25
		{999_999, 1_119_999, 1_249_999},
		{1_234_567, 1_382_715, 1_543_209}, // 1382715.04, 1543208.75
	}

	for _, tt := range tests {
		tiers := DeriveTiers(flight(tt.base, 0))
		assert.Equal(t, []int64{tt.base, tt.value, tt.flexi}, prices(tiers), "base %d", tt.base)
	}
}

func TestDeriveTiers_PricesNeverDecrease(t *testing.T) {
	for base := int64(0); base <= 5000; base += 7 {
		tiers := DeriveTiers(flight(base, 15))
		assert.LessOrEqual(t, tiers[0].Price, tiers[1].Price)
		assert.LessOrEqual(t, tiers[1].Price, tiers[2].Price)
		assert.Equal(t, base, tiers[0].Price)
		assert.True(t, tiers[2].IsRefundable)
	}
}

func TestDeriveTiers_TiesOnlyBelowSix(t *testing.T) {
	ties := map[int64][]int64{
		0: {0, 0, 0},
		1: {1, 1, 1},
		2: {2, 2, 3},
		4: {4, 4, 5},
		5: {5, 6, 6},
	}
	for base, want := range ties {
		assert.Equal(t, want, prices(DeriveTiers(flight(base, 0))), "base %d", base)
	}

	for base := int64(6); base <= 2000; base++ {
		got := prices(DeriveTiers(flight(base, 0)))
		if !assert.Less(t, got[0], got[1], "base %d", base) || !assert.Less(t, got[1], got[2], "base %d", base) {
			return
		}
	}
}

func TestDeriveTiers_Idempotent(t *testing.T) {
	f := flight(1_475_000, 25)
	assert.Equal(t, DeriveTiers(f), DeriveTiers(f))
}

func TestDeriveTiers_KeepsLargerFlightBaggage(t *testing.T) {
	tiers := DeriveTiers(flight(900_000, 25))
	assert.Equal(t, []int{25, 25, 30}, []int{tiers[0].CheckedBaggageKg, tiers[1].CheckedBaggageKg, tiers[2].CheckedBaggageKg})
}

func TestDeriveTiers_InheritsFlightFlags(t *testing.T) {
	f := flight(900_000, 20)
	f.IsRefundable = true
	f.IsReschedulable = true

	tiers := DeriveTiers(f)
	for _, tier := range tiers {
		assert.True(t, tier.IsRefundable, tier.Name)
		assert.True(t, tier.IsReschedulable, tier.Name)
	}
}

func TestSelect_CopyOnSelect(t *testing.T) {
	f := flight(1_000_000, 0)
	original := f.Clone()

	sel, err := Select(f, "4021-value")
	require.NoError(t, err)

	assert.Equal(t, int64(1_120_000), sel.Price)
	assert.Equal(t, int64(1_000_000), sel.BasePrice)
	assert.Equal(t, 20, sel.BaggageKg)
	assert.Equal(t, 7, sel.CabinBaggageKg)
	assert.True(t, sel.IsReschedulable)
	assert.False(t, sel.IsRefundable)
	assert.Equal(t, "4021-value", sel.FareTierID)
	assert.Equal(t, entity.FareValue, sel.FareTag)
	assert.Equal(t, "GA402", sel.FlightNumber)

	sel.Amenities[0] = "wifi"
	assert.Equal(t, original, f, "original flight must not change")
}

func TestSelect_UnknownTier(t *testing.T) {
	_, err := Select(flight(1_000_000, 0), "4021-platinum")
	require.Error(t, err)
	assert.Equal(t, pkgerror.CodeInvalidInput, pkgerror.CodeOf(err))

	_, err = Select(flight(1_000_000, 0), "9999-basic")
	assert.Error(t, err)
}
