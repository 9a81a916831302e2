package provider

import "context"

// Capabilities reports the operational capabilities this provider actually
// supports, satisfying Introspection. The in-memory provider supports the
// full surface: pagination, patch, etag concurrency, sort and attribute
// filtering, but neither bulk nor a dedicated change-password operation.
func (p *StandardProvider) Capabilities(ctx context.Context) (Capabilities, error) {
	if err := checkCtx(ctx); err != nil {
		return Capabilities{}, err
	}

	return Capabilities{
		Bulk:           false,
		Pagination:     true,
		Patch:          true,
		ETag:           true,
		Sort:           true,
		ChangePassword: false,
		Filter:         true,
	}, nil
}

// ExtendedCapabilities reports provider-specific details beyond the fixed
// Capabilities struct: the current tenant count, whether metrics
// collection is attached, and the configured id strategy.
func (p *StandardProvider) ExtendedCapabilities(ctx context.Context) (map[string]any, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	tenantCount := len(p.tenants)
	p.mu.RUnlock()

	return map[string]any{
		"tenantCount":     tenantCount,
		"metricsAttached": p.metrics != nil,
		"idStrategy":      p.cfg.IDStrategy,
	}, nil
}
