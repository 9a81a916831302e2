// Package metrics exposes the counters and gauges backing provider
// introspection: per-operation call counts and a live per-tenant resource
// count, registered against a caller-supplied prometheus.Registerer.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "scim"

// Operation identifies the provider call a counter increment is attributed to.
type Operation string

const (
	OpCreate  Operation = "create"
	OpGet     Operation = "get"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpPatch   Operation = "patch"
	OpList    Operation = "list"
	OpReplace Operation = "replace"
)

// Metrics holds the collectors a Provider reports through. The zero value is
// not usable; construct one with New.
type Metrics struct {
	operations *prometheus.CounterVec
	errors     *prometheus.CounterVec
	resources  *prometheus.GaugeVec
}

// New creates the collectors and registers them against reg. Registering the
// same Metrics twice against the same registry returns an error, mirroring
// prometheus.Registerer.Register.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_operations_total",
			Help:      "Total number of provider operations, by resource type and operation.",
		}, []string{"resource_type", "operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Total number of provider operations that returned an error, by resource type, operation and error code.",
		}, []string{"resource_type", "operation", "code"}),
		resources: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tenant_resources",
			Help:      "Current number of resources stored per tenant and resource type.",
		}, []string{"tenant_id", "resource_type"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.errors, m.resources} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveOperation records one call to op against resourceType.
func (m *Metrics) ObserveOperation(resourceType string, op Operation) {
	m.operations.WithLabelValues(resourceType, string(op)).Inc()
}

// ObserveError records one failed call, tagged with the ScimError code that
// was returned.
func (m *Metrics) ObserveError(resourceType string, op Operation, code string) {
	m.errors.WithLabelValues(resourceType, string(op), code).Inc()
}

// SetTenantResourceCount sets the live resource count for a tenant and
// resource type, replacing whatever value was previously recorded.
func (m *Metrics) SetTenantResourceCount(tenantID, resourceType string, count int) {
	m.resources.WithLabelValues(tenantID, resourceType).Set(float64(count))
}

// IncTenantResourceCount adjusts the live resource count for a tenant and
// resource type by delta, which may be negative.
func (m *Metrics) IncTenantResourceCount(tenantID, resourceType string, delta int) {
	m.resources.WithLabelValues(tenantID, resourceType).Add(float64(delta))
}
