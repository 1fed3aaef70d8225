// Package http assembles the fluxbridge HTTP API.
package http

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/boundary"
	kithttp "github.com/influxdata/fluxbridge/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Route prefixes of the API.
const (
	prefixFlux    = "/api/v2/flux"
	prefixAPI     = "/api/v2"
	prefixMetrics = "/metrics"
	prefixHealth  = "/health"
)

var platformLinks = map[string]interface{}{
	"flux": map[string]string{
		"self":    prefixFlux,
		"ast":     prefixFlux + boundary.RouteAST,
		"format":  prefixFlux + boundary.RouteFormat,
		"vartype": prefixFlux + boundary.RouteVarType,
	},
	"health":  prefixHealth,
	"metrics": prefixMetrics,
}

// PlatformHandler serves the boundary operations, metrics and health.
type PlatformHandler struct {
	r chi.Router
}

// NewPlatformHandler returns a handler serving svc. HTTP metrics are
// registered with reg, which is also exposed on /metrics.
func NewPlatformHandler(log *zap.Logger, reg *prometheus.Registry, svc fluxbridge.BoundaryService) *PlatformHandler {
	api := kithttp.NewAPI(kithttp.WithLog(log))

	r := chi.NewRouter()
	r.Use(
		kithttp.RequestID,
		kithttp.SetLogger(log),
		kithttp.LoggingMW(log),
		kithttp.Metrics("platform", kithttp.NewHTTPMetrics(reg)),
	)

	r.Mount(prefixFlux, boundary.NewHTTPHandler(log.With(zap.String("handler", "flux")), svc))
	r.Method(http.MethodGet, prefixMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Method(http.MethodGet, prefixHealth, ReadyHandler())
	r.Get(prefixAPI, func(w http.ResponseWriter, r *http.Request) {
		api.Respond(w, r, http.StatusOK, platformLinks)
	})

	return &PlatformHandler{r: r}
}

// ServeHTTP delegates a request to the appropriate subhandler.
func (h *PlatformHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.r.ServeHTTP(w, r)
}
