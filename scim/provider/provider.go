// Package provider defines the storage contract every SCIM backend must
// satisfy, plus the shared types (VersionedResource, ListQuery) its
// operations exchange. See StandardProvider for the in-memory reference
// implementation.
package provider

import (
	"context"

	"github.com/xraph/scimcore/scim/reqcontext"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/version"
)

// VersionedResource pairs a Resource with the RawVersion computed from its
// canonical-for-versioning JSON at the moment it was stored or retrieved.
type VersionedResource struct {
	Resource *resource.Resource
	Version  version.RawVersion
}

// SortOrder mirrors the ordering directions a list query may request.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// AttributeFilter restricts a list_resources call to resources whose named
// top-level attribute equals value (the restricted filter grammar named in
// the PATCH path grammar note: attr-equality, optionally ANDed, until a
// full filter grammar is needed).
type AttributeFilter struct {
	Attribute string
	Value     string
}

// ListQuery shapes a list_resources call: pagination via the shared
// pagination package plus optional sort and attribute-equality filters.
type ListQuery struct {
	StartIndex int
	Count      int
	SortBy     string
	SortOrder  SortOrder
	Filters    []AttributeFilter
}

// Provider is the polymorphic storage interface every SCIM backend
// implements. Every method takes ctx first, per the async-uniformity
// design note: the in-memory reference implementation never actually
// suspends, but every caller (and every other backend) must be able to
// rely on ctx being honored.
type Provider interface {
	CreateResource(ctx context.Context, rc reqcontext.RequestContext, resourceType string, raw []byte) (VersionedResource, error)
	GetResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string) (*VersionedResource, error)
	UpdateResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, raw []byte, expectedVersion *version.RawVersion) (VersionedResource, error)
	DeleteResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, expectedVersion *version.RawVersion) error
	ListResources(ctx context.Context, rc reqcontext.RequestContext, resourceType string, query ListQuery) ([]VersionedResource, int, error)
	FindResourcesByAttribute(ctx context.Context, rc reqcontext.RequestContext, resourceType, attribute, value string) ([]VersionedResource, error)
	ResourceExists(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string) (bool, error)
	PatchResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, patchRaw []byte, expectedVersion *version.RawVersion) (VersionedResource, error)
	ConditionalUpdate(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, raw []byte, expectedVersion version.RawVersion) (version.ConditionalResult[VersionedResource], error)
	ConditionalDelete(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, expectedVersion version.RawVersion) (version.ConditionalResult[struct{}], error)
}

// Capabilities describes what a provider supports beyond the baseline
// CRUD contract, used to build the RFC 7644 §5 ServiceProviderConfig
// document.
type Capabilities struct {
	Bulk           bool
	Pagination     bool
	Patch          bool
	ETag           bool
	Sort           bool
	ChangePassword bool
	Filter         bool
}

// Introspection is an optional extension a provider may implement to
// advertise its Capabilities and expose extended metrics/limits beyond the
// base Provider contract. The SCIM Server merges this into
// discover_capabilities_with_introspection when present.
type Introspection interface {
	Capabilities(ctx context.Context) (Capabilities, error)
	ExtendedCapabilities(ctx context.Context) (map[string]any, error)
}
