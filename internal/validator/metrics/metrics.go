package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validator.
type Metrics struct {
	// Final outcomes by code, mode and certificate kind
	Outcome *prometheus.CounterVec

	// Full validation latency, both branches included
	ValidateLatency prometheus.Histogram

	// Revocation lookups against the blacklist and the CRL store
	RevocationLatency prometheus.Histogram

	// Signature checks by result
	SignatureChecks *prometheus.CounterVec
}

// New registers the validator metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the validator metrics with reg. Tests pass a
// fresh registry to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greenpass_validation_outcomes_total",
			Help: "Total validation outcomes by code, mode and certificate kind",
		}, []string{"code", "mode", "kind"}),

		ValidateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "greenpass_validation_duration_seconds",
			Help:    "Duration of a full validation including signature and rules",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		RevocationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "greenpass_revocation_check_duration_ms",
			Help:    "Duration of revocation checks in milliseconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
		}),

		SignatureChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greenpass_signature_checks_total",
			Help: "Signature checks by outcome",
		}, []string{"verified"}),
	}
}

// IncrementOutcome records a validation outcome.
func (m *Metrics) IncrementOutcome(code, mode, kind string) {
	if m != nil {
		m.Outcome.WithLabelValues(code, mode, kind).Inc()
	}
}

// ObserveValidateLatency records the total validation duration.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// ObserveRevocationCheck records how long the revocation check took.
func (m *Metrics) ObserveRevocationCheck(d time.Duration) {
	if m != nil {
		m.RevocationLatency.Observe(float64(d.Microseconds()) / 1000)
	}
}

// IncrementSignatureCheck records a signature check result.
func (m *Metrics) IncrementSignatureCheck(verified bool) {
	if m != nil {
		label := "false"
		if verified {
			label = "true"
		}
		m.SignatureChecks.WithLabelValues(label).Inc()
	}
}
