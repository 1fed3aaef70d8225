package boundary

import (
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/kit/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricService is a metrics middleware for a boundary service.
type MetricService struct {
	// RED metrics
	rec *metric.REDClient

	svc fluxbridge.BoundaryService
}

var _ fluxbridge.BoundaryService = (*MetricService)(nil)

// NewMetricService creates a new boundary metrics middleware.
func NewMetricService(reg prometheus.Registerer, s fluxbridge.BoundaryService) *MetricService {
	return &MetricService{
		rec: metric.New(reg, "boundary"),
		svc: s,
	}
}

// Parse calls the underlying service and tracks RED metrics for the call.
func (ms *MetricService) Parse(unit fluxbridge.SourceUnit) ([]byte, error) {
	rec := ms.rec.Record("parse")
	b, err := ms.svc.Parse(unit)
	return b, rec(err)
}

// Format calls the underlying service and tracks RED metrics for the call.
func (ms *MetricService) Format(encoded []byte) (string, error) {
	rec := ms.rec.Record("format")
	s, err := ms.svc.Format(encoded)
	return s, rec(err)
}

// ResolveVariableType calls the underlying service and tracks RED metrics for the call.
func (ms *MetricService) ResolveVariableType(unit fluxbridge.SourceUnit, varName string) ([]byte, error) {
	rec := ms.rec.Record("resolve_variable_type")
	b, err := ms.svc.ResolveVariableType(unit, varName)
	return b, rec(err)
}
