package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/pkg/pkguid"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// Handler returns the value to encode as the JSON body, or an error that is
// mapped to a status code through its pkgerror.Code.
type Handler func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux  *http.ServeMux
	uuid pkguid.StringID
}

func NewRouter(uuid pkguid.StringID) *Router {
	return &Router{mux: http.NewServeMux(), uuid: uuid}
}

func (r *Router) GET(path string, h Handler) { r.handle(http.MethodGet, path, h) }

func (r *Router) POST(path string, h Handler) { r.handle(http.MethodPost, path, h) }

func (r *Router) PUT(path string, h Handler) { r.handle(http.MethodPut, path, h) }

func (r *Router) DELETE(path string, h Handler) { r.handle(http.MethodDelete, path, h) }

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) handle(method, path string, h Handler) {
	r.mux.HandleFunc(method+" "+path, func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = r.uuid.Generate()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := context.WithValue(req.Context(), requestIDKey{}, requestID)

		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(ctx, "panic while handling request", "path", req.URL.Path, "panic", rec, "request_id", requestID)
				writeError(ctx, w, pkgerror.NewBusiness("internal server error", pkgerror.CodeInternal))
			}
		}()

		resp, err := h(ctx, req.WithContext(ctx))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, resp)
	})
}

// RequestID returns the id assigned to the request being served.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	e, ok := pkgerror.As(err)
	if !ok {
		slog.ErrorContext(ctx, "unhandled error", "error", err, "request_id", RequestID(ctx))
		e = pkgerror.NewBusiness("internal server error", pkgerror.CodeInternal)
	}
	writeJSON(ctx, w, statusOf(e.Code()), errorBody{Error: errorDetail{
		Code:    e.Code().String(),
		Message: e.Message(),
		Field:   e.Field(),
	}})
}

func statusOf(code pkgerror.Code) int {
	switch code {
	case pkgerror.CodeInvalidInput:
		return http.StatusBadRequest
	case pkgerror.CodeNotFound:
		return http.StatusNotFound
	case pkgerror.CodeFetchFailed:
		return http.StatusBadGateway
	case pkgerror.CodeRemoteRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
