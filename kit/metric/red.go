// Package metric records RED (rate, errors, duration) metrics for service
// calls.
package metric

import (
	"time"

	"github.com/influxdata/fluxbridge/kit/platform/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// CodeOK is the code label of calls that returned no error.
const CodeOK = "ok"

// REDClient is a metrics client for collecting RED metrics of one service.
type REDClient struct {
	calls    *prometheus.CounterVec
	errs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a client for service and registers its collectors with reg.
func New(reg prometheus.Registerer, service string) *REDClient {
	const namespace = "fluxbridge"

	c := &REDClient{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "call_total",
			Help:      "Number of calls",
		}, []string{"method", "code"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "call_error_total",
			Help:      "Number of calls that returned an error",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "call_duration_seconds",
			Help:      "Duration of calls",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method"}),
	}
	reg.MustRegister(c.calls, c.errs, c.duration)
	return c
}

// Record starts timing a call to method. The returned func records the call
// with the outcome of err and hands err back unchanged.
func (c *REDClient) Record(method string) func(error) error {
	start := time.Now()
	return func(err error) error {
		code := CodeOK
		if err != nil {
			code = errors.ErrorCode(err)
			c.errs.WithLabelValues(method, code).Inc()
		}
		c.calls.WithLabelValues(method, code).Inc()
		c.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		return err
	}
}
