package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrustMetrics(t *testing.T) {
	m := NewTrustWithRegisterer(prometheus.NewRegistry())

	m.RecordReload("rules", nil)
	m.RecordReload("keys", errors.New("bad pem"))
	m.SetSnapshot(12, 3, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reloads.WithLabelValues("rules", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reloads.WithLabelValues("keys", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ready))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Keys))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.Rules))
}

func TestNilTrustMetricsAreSafe(t *testing.T) {
	var m *Trust
	m.RecordReload("rules", nil)
	m.SetSnapshot(1, 1, true)
}
