package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	calls   []Request
	receipt Receipt
	err     error
}

func (f *fakeClient) Finalize(_ context.Context, req Request) (Receipt, error) {
	f.calls = append(f.calls, req)
	return f.receipt, f.err
}

func selection(id string) *entity.SelectedFlight {
	return &entity.SelectedFlight{
		Flight:     entity.Flight{ID: id, Price: 1120000},
		FareTierID: id + "-value",
		FareTag:    entity.FareValue,
	}
}

func TestFinalizer_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want error
	}{
		{name: "empty user", in: Input{UserID: "", Selection: selection("7")}, want: ErrInvalidSession},
		{name: "non numeric user", in: Input{UserID: "abc", Selection: selection("7")}, want: ErrInvalidSession},
		{name: "zero user", in: Input{UserID: "0", Selection: selection("7")}, want: ErrInvalidSession},
		{name: "no selection", in: Input{UserID: "12"}, want: ErrNoFlightSelected},
		{name: "non numeric flight", in: Input{UserID: "12", Selection: selection("GA-402")}, want: ErrInvalidFlightReference},
		{name: "negative flight", in: Input{UserID: "12", Selection: selection("-3")}, want: ErrInvalidFlightReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			_, err := NewFinalizer(client).Finalize(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, pkgerror.CodeInvalidInput, pkgerror.CodeOf(err))
			assert.Empty(t, client.calls, "no remote call on local failure")
		})
	}
}

func TestFinalizer_SendsOneRequest(t *testing.T) {
	client := &fakeClient{receipt: Receipt{Message: "booked"}}
	got, err := NewFinalizer(client).Finalize(context.Background(), Input{
		UserID:     " 12 ",
		Selection:  selection("7"),
		Passengers: entity.Passengers{Adults: 2, Children: 1},
		TripType:   entity.TripRoundTrip,
	})
	require.NoError(t, err)
	assert.Equal(t, "booked", got.Message)

	require.Len(t, client.calls, 1)
	assert.Equal(t, Request{
		UserID:         12,
		FlightID:       7,
		FareTierCode:   "value",
		PassengerCount: 3,
		TripType:       entity.TripRoundTrip,
	}, client.calls[0])
}

func TestFinalizer_RemoteErrorNotRetried(t *testing.T) {
	client := &fakeClient{err: pkgerror.NewRemote("seat no longer available")}
	_, err := NewFinalizer(client).Finalize(context.Background(), Input{UserID: "1", Selection: selection("7")})

	assert.EqualError(t, err, "seat no longer available")
	assert.Len(t, client.calls, 1)
}

func TestFinalizer_Defaults(t *testing.T) {
	client := &fakeClient{}
	_, err := NewFinalizer(client).Finalize(context.Background(), Input{UserID: "1", Selection: selection("7")})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls[0].PassengerCount)
	assert.Equal(t, entity.TripOneWay, client.calls[0].TripType)
}

func TestHTTPClient_Finalize(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"message":"Booking confirmed"}`))
	}))
	defer srv.Close()

	receipt, err := NewHTTPClient(srv.URL, srv.Client()).Finalize(context.Background(), Request{
		UserID: 1, FlightID: 7, FareTierCode: "flexi", PassengerCount: 2, TripType: entity.TripOneWay,
	})
	require.NoError(t, err)
	assert.Equal(t, "Booking confirmed", receipt.Message)
	assert.Equal(t, map[string]any{
		"user_id":         float64(1),
		"flight_id":       float64(7),
		"fare_tier_code":  "flexi",
		"passenger_count": float64(2),
		"trip_type":       "one-way",
	}, got)
}

func TestHTTPClient_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Flight is fully booked"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, srv.Client()).Finalize(context.Background(), Request{})
	assert.Equal(t, pkgerror.CodeRemoteRejected, pkgerror.CodeOf(err))
	assert.EqualError(t, err, "Flight is fully booked")
}

func TestHTTPClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, nil).Finalize(context.Background(), Request{})
	assert.Equal(t, pkgerror.CodeFetchFailed, pkgerror.CodeOf(err))

	e, ok := pkgerror.As(err)
	require.True(t, ok)
	assert.Equal(t, "checkout service is unavailable", e.Message())
	assert.NotNil(t, errors.Unwrap(err))
}

func TestHTTPClient_Garbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, srv.Client()).Finalize(context.Background(), Request{})
	assert.Equal(t, pkgerror.CodeFetchFailed, pkgerror.CodeOf(err))
}
