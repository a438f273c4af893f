// Package monitoring exposes Prometheus metrics for lookups and source
// reads, and runs a periodic health check that alerts on an unreachable
// record store or open source circuits.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the lookup engine and API metrics.
type Metrics struct {
	FetchDuration     *prometheus.HistogramVec // source reads by source and outcome
	OperationDuration *prometheus.HistogramVec // lookups by operation and outcome
	PartialFailures   *prometheus.CounterVec   // independent sources absorbed per operation
	HTTPRequests      *prometheus.CounterVec   // API requests by route and status
	CacheLookups      *prometheus.CounterVec   // response cache hits and misses

	StoreUp      prometheus.Gauge
	CircuitState *prometheus.GaugeVec // 0 closed, 1 open, 2 half-open
}

// NewMetrics registers the metrics with reg. A nil reg uses the default
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loanops_source_fetch_duration_seconds",
			Help:    "Duration of record source reads by source and outcome",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source", "outcome"}),

		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loanops_lookup_duration_seconds",
			Help:    "Duration of lookup operations by operation and outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),

		PartialFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loanops_partial_failures_total",
			Help: "Independent source failures absorbed into a partial result",
		}, []string{"operation", "source"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loanops_http_requests_total",
			Help: "API requests by route and status code",
		}, []string{"route", "status"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loanops_cache_lookups_total",
			Help: "Response cache lookups by result",
		}, []string{"result"}),

		StoreUp: f.NewGauge(prometheus.GaugeOpts{
			Name: "loanops_store_up",
			Help: "1 when the last record store health check succeeded",
		}),

		CircuitState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "loanops_source_circuit_state",
			Help: "Circuit breaker state per source: 0 closed, 1 open, 2 half-open",
		}, []string{"source"}),
	}
}

// ObserveFetch records one source read.
func (m *Metrics) ObserveFetch(source, outcome string, elapsed time.Duration) {
	m.FetchDuration.WithLabelValues(source, outcome).Observe(elapsed.Seconds())
}

// ObserveOperation records one lookup.
func (m *Metrics) ObserveOperation(op, outcome string, elapsed time.Duration) {
	m.OperationDuration.WithLabelValues(op, outcome).Observe(elapsed.Seconds())
}

// ObservePartialFailure counts an independent source failure.
func (m *Metrics) ObservePartialFailure(op, source string) {
	m.PartialFailures.WithLabelValues(op, source).Inc()
}

// ObserveRequest counts an API response.
func (m *Metrics) ObserveRequest(route string, status int) {
	m.HTTPRequests.WithLabelValues(route, statusLabel(status)).Inc()
}

// ObserveCache counts a response cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// SetHealth updates the store and circuit gauges from a snapshot.
func (m *Metrics) SetHealth(snap *Snapshot) {
	if snap.StoreUp {
		m.StoreUp.Set(1)
	} else {
		m.StoreUp.Set(0)
	}
	for source, state := range snap.Circuits {
		m.CircuitState.WithLabelValues(source).Set(circuitValue(state))
	}
}

func circuitValue(state string) float64 {
	switch state {
	case "open":
		return 1
	case "half-open":
		return 2
	default:
		return 0
	}
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
