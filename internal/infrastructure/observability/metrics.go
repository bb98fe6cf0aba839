package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the service
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	UnlockOutcomes *prometheus.CounterVec
	CreditGrants   *prometheus.CounterVec
}

// NewMetrics creates and registers the service collectors
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		UnlockOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unlock_attempts_total",
				Help: "Total number of unlock attempts by outcome",
			},
			[]string{"outcome"},
		),
		CreditGrants: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_grants_total",
				Help: "Total number of checkout credit grants by status",
			},
			[]string{"status"},
		),
	}

	registerer.MustRegister(m.HTTPRequests, m.HTTPDuration, m.UnlockOutcomes, m.CreditGrants)
	return m
}

// RecordUnlockOutcome counts one unlock attempt with the given outcome
func (m *Metrics) RecordUnlockOutcome(outcome string) {
	m.UnlockOutcomes.WithLabelValues(outcome).Inc()
}

// RecordCreditGrant counts one checkout grant with the given status
func (m *Metrics) RecordCreditGrant(status string) {
	m.CreditGrants.WithLabelValues(status).Inc()
}
