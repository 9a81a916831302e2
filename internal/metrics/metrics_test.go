package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func newMetricsForTest(t *testing.T) *Metrics {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	return m
}

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, labels prometheus.Labels) float64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, vec.With(labels).Write(metric))

	return metric.GetGauge().GetValue()
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels prometheus.Labels) float64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, vec.With(labels).Write(metric))

	return metric.GetCounter().GetValue()
}

func TestNewRegistersCollectorsOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	require.Error(t, err, "registering a second Metrics against the same registry should fail")
}

func TestObserveOperation(t *testing.T) {
	m := newMetricsForTest(t)

	m.ObserveOperation("User", OpCreate)
	m.ObserveOperation("User", OpCreate)
	m.ObserveOperation("Group", OpList)

	require.Equal(t, float64(2), counterValue(t, m.operations, prometheus.Labels{"resource_type": "User", "operation": "create"}))
	require.Equal(t, float64(1), counterValue(t, m.operations, prometheus.Labels{"resource_type": "Group", "operation": "list"}))
}

func TestObserveError(t *testing.T) {
	m := newMetricsForTest(t)

	m.ObserveError("User", OpPatch, "VERSION_MISMATCH")

	require.Equal(t, float64(1), counterValue(t, m.errors, prometheus.Labels{
		"resource_type": "User",
		"operation":     "patch",
		"code":          "VERSION_MISMATCH",
	}))
}

func TestTenantResourceCount(t *testing.T) {
	m := newMetricsForTest(t)

	m.SetTenantResourceCount("tenant-a", "User", 5)
	require.Equal(t, float64(5), gaugeValue(t, m.resources, prometheus.Labels{"tenant_id": "tenant-a", "resource_type": "User"}))

	m.IncTenantResourceCount("tenant-a", "User", 1)
	require.Equal(t, float64(6), gaugeValue(t, m.resources, prometheus.Labels{"tenant_id": "tenant-a", "resource_type": "User"}))

	m.IncTenantResourceCount("tenant-a", "User", -2)
	require.Equal(t, float64(4), gaugeValue(t, m.resources, prometheus.Labels{"tenant_id": "tenant-a", "resource_type": "User"}))
}
