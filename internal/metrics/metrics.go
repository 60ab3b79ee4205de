package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector groups the desk's client-side metrics and the development API's
// request metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewCollector registers every metric on a fresh registry.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		CallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "calls_total",
			Help:      "Resource API calls by kind, operation and outcome.",
		}, []string{"kind", "operation", "outcome"}),

		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "call_duration_seconds",
			Help:      "Resource API call latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"kind", "operation"}),

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Development API requests by path and status code.",
		}, []string{"path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Development API request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"path"}),

		gatherer: reg,
	}
}

// ObserveCall records one Resource Client call.
func (c *Collector) ObserveCall(kind, operation, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.CallsTotal.WithLabelValues(kind, operation, outcome).Inc()
	c.CallDuration.WithLabelValues(kind, operation).Observe(elapsed.Seconds())
}

// ObserveRequest records one development API request.
func (c *Collector) ObserveRequest(path, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.RequestsTotal.WithLabelValues(path, status).Inc()
	c.RequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
