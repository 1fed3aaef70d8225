package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/influxdata/fluxbridge/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "given")
	h.ServeHTTP(w, r)
	assert.Equal(t, "given", seen)
	assert.Equal(t, "given", w.Header().Get(RequestIDHeader))
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := RequestID(SetLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("handled")
	})))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), r)

	entries := logs.FilterMessage("handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
}

func TestLoggingMW(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := LoggingMW(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(PlatformErrorCodeHeader, "decode error")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("oops"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v2/flux/format", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Request", entries[0].Message)
	assert.Equal(t, int64(http.StatusBadRequest), fields["status_code"])
	assert.Equal(t, int64(4), fields["response_size"])
	assert.Equal(t, "decode error", fields["error_code"])
	assert.Equal(t, "/api/v2/flux/format", fields["path"])
}

func TestStatusResponseWriter(t *testing.T) {
	tests := []struct {
		status int
		class  string
	}{
		{status: 0, class: "2XX"},
		{status: http.StatusNoContent, class: "2XX"},
		{status: http.StatusNotFound, class: "4XX"},
		{status: http.StatusInternalServerError, class: "5XX"},
	}
	for _, tt := range tests {
		w := NewStatusResponseWriter(httptest.NewRecorder())
		if tt.status != 0 {
			w.WriteHeader(tt.status)
		}
		assert.Equal(t, tt.class, w.StatusCodeClass())
	}
}

func TestRoutePattern(t *testing.T) {
	var got string
	sub := chi.NewRouter()
	sub.Post("/ast", func(w http.ResponseWriter, r *http.Request) {})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			got = routePattern(r)
		})
	})
	r.Mount("/api/v2/flux", sub)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v2/flux/ast", nil))
	assert.Equal(t, "/api/v2/flux/ast", got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	assert.Equal(t, "unmatched", got)
}
