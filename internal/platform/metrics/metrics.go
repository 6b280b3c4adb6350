package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Trust holds Prometheus metrics for the trust store.
type Trust struct {
	Reloads *prometheus.CounterVec
	Ready   prometheus.Gauge
	Keys    prometheus.Gauge
	Rules   prometheus.Gauge
}

// NewTrust creates and registers trust store metrics on the default registry.
func NewTrust() *Trust {
	return NewTrustWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTrustWithRegisterer registers on reg, which lets tests use a fresh registry.
func NewTrustWithRegisterer(reg prometheus.Registerer) *Trust {
	f := promauto.With(reg)
	return &Trust{
		Reloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "greenpass_trust_reloads_total",
			Help: "Trust data replacements by kind (rules, keys) and result",
		}, []string{"kind", "result"}),
		Ready: f.NewGauge(prometheus.GaugeOpts{
			Name: "greenpass_trust_ready",
			Help: "1 when rules and signing keys are loaded",
		}),
		Keys: f.NewGauge(prometheus.GaugeOpts{
			Name: "greenpass_trust_signing_keys",
			Help: "Number of signer certificates in the trust store",
		}),
		Rules: f.NewGauge(prometheus.GaugeOpts{
			Name: "greenpass_trust_rules",
			Help: "Number of validation rules in the trust store",
		}),
	}
}

// RecordReload counts one replacement attempt.
func (m *Trust) RecordReload(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Reloads.WithLabelValues(kind, result).Inc()
}

// SetSnapshot publishes the loaded sizes and readiness.
func (m *Trust) SetSnapshot(rules, keys int, ready bool) {
	if m == nil {
		return
	}
	m.Rules.Set(float64(rules))
	m.Keys.Set(float64(keys))
	if ready {
		m.Ready.Set(1)
	} else {
		m.Ready.Set(0)
	}
}
