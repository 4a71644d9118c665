package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func criteriaFor(dest string) entity.SearchCriteria {
	return entity.SearchCriteria{
		OriginCode:      "CGK",
		DestinationCode: dest,
		DepartureDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TripType:        entity.TripOneWay,
		Passengers:      entity.Passengers{Adults: 1},
		CabinClass:      entity.CabinEconomy,
	}
}

func TestView_StartsIdle(t *testing.T) {
	s := NewView().Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Nil(t, s.Criteria)
	assert.Empty(t, s.Flights)
}

func TestView_CompleteLatest(t *testing.T) {
	v := NewView()
	ctx, ticket := v.Begin(context.Background(), criteriaFor("DPS"))
	assert.Equal(t, StatusLoading, v.Snapshot().Status)

	require.True(t, v.Complete(ticket, catalog(), nil))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	s := v.Snapshot()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, "DPS", s.Criteria.DestinationCode)
	assert.Len(t, s.Flights, 4)
}

func TestView_OutOfOrderResponses(t *testing.T) {
	v := NewView()
	ctxA, a := v.Begin(context.Background(), criteriaFor("DPS"))
	_, b := v.Begin(context.Background(), criteriaFor("SUB"))

	assert.ErrorIs(t, ctxA.Err(), context.Canceled, "starting B cancels A")

	require.True(t, v.Complete(b, []entity.Flight{flight("b1", "JT", 100, 0, 8, 60)}, nil))
	assert.False(t, v.Complete(a, []entity.Flight{flight("a1", "GA", 100, 0, 8, 60)}, nil))

	s := v.Snapshot()
	assert.Equal(t, "SUB", s.Criteria.DestinationCode)
	assert.Equal(t, []string{"b1"}, ids(s.Flights))
}

func TestView_StaleResponseWhileLoading(t *testing.T) {
	v := NewView()
	_, a := v.Begin(context.Background(), criteriaFor("DPS"))
	_, b := v.Begin(context.Background(), criteriaFor("SUB"))

	assert.False(t, v.Complete(a, catalog(), nil))
	assert.Equal(t, StatusLoading, v.Snapshot().Status)

	require.True(t, v.Complete(b, nil, nil))
	assert.Equal(t, StatusReady, v.Snapshot().Status)
}

func TestView_Failure(t *testing.T) {
	v := NewView()
	_, first := v.Begin(context.Background(), criteriaFor("DPS"))
	require.True(t, v.Complete(first, catalog(), nil))

	_, second := v.Begin(context.Background(), criteriaFor("SUB"))
	require.True(t, v.Complete(second, catalog(), errors.New("timeout")))

	s := v.Snapshot()
	assert.Equal(t, StatusFailed, s.Status)
	assert.Empty(t, s.Flights)
	assert.EqualError(t, s.Err, "timeout")
}

func TestView_Cancel(t *testing.T) {
	v := NewView()
	_, first := v.Begin(context.Background(), criteriaFor("DPS"))
	require.True(t, v.Complete(first, catalog(), nil))

	ctx, second := v.Begin(context.Background(), criteriaFor("SUB"))
	v.Cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, v.Complete(second, nil, nil))

	s := v.Snapshot()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, "DPS", s.Criteria.DestinationCode)
	assert.Len(t, s.Flights, 4)
}

func TestView_CancelWithoutFetch(t *testing.T) {
	v := NewView()
	v.Cancel()
	assert.Equal(t, StatusIdle, v.Snapshot().Status)
	assert.Zero(t, v.Snapshot().Seq)
}

func TestView_Reset(t *testing.T) {
	v := NewView()
	_, ticket := v.Begin(context.Background(), criteriaFor("DPS"))
	require.True(t, v.Complete(ticket, catalog(), nil))

	v.Reset()
	s := v.Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Nil(t, s.Criteria)
	assert.Empty(t, s.Flights)
}

func TestView_ResultsAndFind(t *testing.T) {
	v := NewView()
	_, ticket := v.Begin(context.Background(), criteriaFor("DPS"))
	require.True(t, v.Complete(ticket, catalog(), nil))

	got, s := v.Results(FilterState{DirectOnly: true}, SortPriceDesc)
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, []string{"1", "3", "4"}, ids(got))

	f, ok := v.Find("3")
	require.True(t, ok)
	assert.Equal(t, "QZ", f.Airline.Code)

	_, ok = v.Find("missing")
	assert.False(t, ok)
}
