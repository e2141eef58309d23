package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all client-side metrics
type Metrics struct {
	// API request metrics
	Requests       *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	JoinedRequests *prometheus.CounterVec

	// Circuit breaker metrics
	BreakerTransitions *prometheus.CounterVec

	// Template list cache metrics
	CacheLookups *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on reg. A nil reg uses a
// private registry so repeated construction never collides.
func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_requests_total",
			Help:      "Total number of backend API requests",
		}, []string{"operation", "status"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of backend API requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		JoinedRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_requests_joined_total",
			Help:      "Requests that joined an identical in-flight request",
		}, []string{"operation"}),
		BreakerTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		}, []string{"name", "to"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "template_cache_lookups_total",
			Help:      "Template list cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, status).Inc()
	m.RequestLatency.WithLabelValues(operation).Observe(seconds)
}

// CacheResult records a cache lookup outcome: hit, miss or stale.
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
