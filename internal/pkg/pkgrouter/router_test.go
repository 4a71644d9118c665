package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func TestRouter_Success(t *testing.T) {
	r := NewRouter(fixedID("req-1"))
	r.GET("/ping/{name}", func(ctx context.Context, req *http.Request) (any, error) {
		return map[string]string{"hello": req.PathValue("name"), "id": RequestID(ctx)}, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/bali", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bali", body["hello"])
	assert.Equal(t, "req-1", body["id"])
}

func TestRouter_KeepsIncomingRequestID(t *testing.T) {
	r := NewRouter(fixedID("generated"))
	r.GET("/ping", func(ctx context.Context, _ *http.Request) (any, error) { return RequestID(ctx), nil })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "from-client")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "from-client", rec.Header().Get(HeaderRequestID))
}

func TestRouter_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"validation", pkgerror.NewValidation("origin", "origin is required"), http.StatusBadRequest, "INVALID_INPUT", "origin"},
		{"not found", pkgerror.NewNotFound("session not found"), http.StatusNotFound, "NOT_FOUND", ""},
		{"fetch", pkgerror.NewFetch("flight search failed", errors.New("eof")), http.StatusBadGateway, "FETCH_FAILED", ""},
		{"remote", pkgerror.NewRemote("sold out"), http.StatusUnprocessableEntity, "REMOTE_REJECTED", ""},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(fixedID("x"))
			r.POST("/fail", func(context.Context, *http.Request) (any, error) { return nil, tt.err })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))

			assert.Equal(t, tt.status, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func TestRouter_RecoversPanic(t *testing.T) {
	r := NewRouter(fixedID("x"))
	r.DELETE("/panic", func(context.Context, *http.Request) (any, error) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_MethodMismatch(t *testing.T) {
	r := NewRouter(fixedID("x"))
	r.PUT("/criteria", func(context.Context, *http.Request) (any, error) { return "ok", nil })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/criteria", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
