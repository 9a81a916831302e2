// Package reqcontext carries the per-request identity and optional tenant
// scope that every provider and server operation is evaluated against.
// RequestContext values are request-scoped: never cached, never shared
// across requests, and safe to attach to a stdlib context.Context using
// the With/From helpers below.
package reqcontext

import (
	"context"

	"github.com/xraph/scimcore/internal/errs"
)

// IsolationLevel is advisory guidance from the caller about how strictly a
// provider should partition tenant data. The standard provider treats all
// three values identically (strict tenant-key partitioning); a
// database-backed provider might use it to pick a connection pool or
// schema-per-tenant strategy.
type IsolationLevel int

const (
	IsolationStrict IsolationLevel = iota
	IsolationStandard
	IsolationShared
)

// Permissions gates which operations a tenant's caller may perform, plus
// optional per-resource-type ceilings.
type Permissions struct {
	CanCreate bool
	CanRead   bool
	CanUpdate bool
	CanDelete bool
	CanList   bool

	// MaxUsers and MaxGroups are nil when no ceiling applies.
	MaxUsers  *int
	MaxGroups *int
}

// AllowAll is the permission set single-tenant contexts grant implicitly.
func AllowAll() Permissions {
	return Permissions{CanCreate: true, CanRead: true, CanUpdate: true, CanDelete: true, CanList: true}
}

// TenantContext scopes a request to one tenant partition.
type TenantContext struct {
	TenantID       string
	ClientID       string
	Permissions    Permissions
	IsolationLevel IsolationLevel
}

// RequestContext is the per-request identity passed into every provider
// and server call.
type RequestContext struct {
	RequestID string
	Tenant    *TenantContext
}

// Validate enforces the invariants: RequestID is non-empty, and when a
// tenant is present both TenantID and ClientID are non-empty.
func (c RequestContext) Validate() error {
	if c.RequestID == "" {
		return errs.RequiredField("requestId")
	}

	if c.Tenant != nil {
		if c.Tenant.TenantID == "" {
			return errs.RequiredField("tenant.tenantId")
		}

		if c.Tenant.ClientID == "" {
			return errs.RequiredField("tenant.clientId")
		}
	}

	return nil
}

// IsSingleTenant reports whether c carries no tenant scope.
func (c RequestContext) IsSingleTenant() bool {
	return c.Tenant == nil
}

// PermissionsFor returns the effective permission set for c: the tenant's
// own permissions when scoped, or AllowAll for single-tenant contexts.
func (c RequestContext) PermissionsFor() Permissions {
	if c.Tenant == nil {
		return AllowAll()
	}

	return c.Tenant.Permissions
}

type contextKey struct{}

// WithRequestContext attaches rc to ctx for retrieval by From.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// From retrieves the RequestContext previously attached with
// WithRequestContext, and whether one was present.
func From(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(RequestContext)
	return rc, ok
}
