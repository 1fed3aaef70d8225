package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/influxdata/fluxbridge/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id of a request in both directions.
const RequestIDHeader = "X-Request-Id"

// Middleware constructor.
type Middleware func(http.Handler) http.Handler

// RequestID echoes the caller's X-Request-Id or assigns a new one.
func RequestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// SetLogger puts log, tagged with the request id, in the request context.
func SetLogger(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			l := log
			if id := r.Header.Get(RequestIDHeader); id != "" {
				l = l.With(zap.String("request_id", id))
			}
			next.ServeHTTP(w, r.WithContext(logger.NewContextWithLogger(r.Context(), l)))
		}
		return http.HandlerFunc(fn)
	}
}

// LoggingMW middleware for logging inflight http requests.
func LoggingMW(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			srw := NewStatusResponseWriter(w)

			defer func(start time.Time) {
				errField := zap.Skip()
				if code := srw.Header().Get(PlatformErrorCodeHeader); code != "" {
					errField = zap.String("error_code", code)
				}
				log.Debug("Request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", r.Header.Get(RequestIDHeader)),
					zap.Int("status_code", srw.Code()),
					zap.Int("response_size", srw.ResponseBytes()),
					zap.Int64("content_length", r.ContentLength),
					zap.String("remote", r.RemoteAddr),
					zap.Duration("took", time.Since(start)),
					errField,
				)
			}(time.Now())

			next.ServeHTTP(srw, r)
		}
		return http.HandlerFunc(fn)
	}
}

// HTTPMetrics holds the request counter and latency histogram of a server.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers the http request metrics with reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	labels := []string{"handler", "method", "path", "status", "response_code"}
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fluxbridge",
			Subsystem: "http",
			Name:      "api_requests_total",
			Help:      "Number of http requests received",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fluxbridge",
			Subsystem: "http",
			Name:      "api_request_duration_seconds",
			Help:      "Time taken to respond to HTTP request",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Metrics records every request served by the named handler. It must be
// installed with chi's Use so the matched route pattern is known.
func Metrics(name string, m *HTTPMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			statusW := NewStatusResponseWriter(w)

			defer func(start time.Time) {
				label := prometheus.Labels{
					"handler":       name,
					"method":        r.Method,
					"path":          routePattern(r),
					"status":        statusW.StatusCodeClass(),
					"response_code": strconv.Itoa(statusW.Code()),
				}
				m.duration.With(label).Observe(time.Since(start).Seconds())
				m.requests.With(label).Inc()
			}(time.Now())

			next.ServeHTTP(statusW, r)
		}
		return http.HandlerFunc(fn)
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	p := strings.Join(rctx.RoutePatterns, "")
	p = strings.Replace(p, "/*/", "/", -1)
	if p == "" {
		return "unmatched"
	}
	return p
}
