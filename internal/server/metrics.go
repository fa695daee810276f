package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/meowgic/internal/catfact"
)

// Metrics holds the collectors for one process. Each instance owns its own
// registry, so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	fetchTotal     *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	fetchInFlight  prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// NewMetrics creates and registers all collectors, including the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meowgic",
			Name:      "fetch_total",
			Help:      "Cat fact requests by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meowgic",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of cat fact requests.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		fetchInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meowgic",
			Name:      "fetch_in_flight",
			Help:      "Cat fact requests currently in flight.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meowgic",
			Name:      "requests_total",
			Help:      "HTTP requests served by the metrics endpoint.",
		}, []string{"path"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meowgic",
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(
		m.fetchTotal, m.fetchDuration, m.fetchInFlight,
		m.requestsTotal, m.activeRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// Pre-create both series so dashboards see zeros before the first fetch.
	m.fetchTotal.WithLabelValues(string(catfact.OutcomeSuccess))
	m.fetchTotal.WithLabelValues(string(catfact.OutcomeFailure))

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// FetchStarted implements catfact.Observer.
func (m *Metrics) FetchStarted() {
	m.fetchInFlight.Inc()
}

// FetchFinished implements catfact.Observer.
func (m *Metrics) FetchFinished(outcome catfact.Outcome, elapsed time.Duration) {
	m.fetchInFlight.Dec()
	m.fetchTotal.WithLabelValues(string(outcome)).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}

// IncrementActiveRequests increments the active HTTP requests gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the active HTTP requests gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// RecordRequest counts one served request.
func (m *Metrics) RecordRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// WritePrometheus writes all metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

var _ catfact.Observer = (*Metrics)(nil)
