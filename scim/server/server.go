// Package server is the composition root: it wires a Provider, a schema
// Registry and a registry of per-resource-type Handlers into one
// dispatchable SCIM Server, enforcing which operations are allowed against
// each registered resource type and annotating responses with reference
// URLs built according to the configured tenancy strategy.
package server

import (
	"context"
	"sync"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/handler"
	"github.com/xraph/scimcore/scim/provider"
	"github.com/xraph/scimcore/scim/reqcontext"
	"github.com/xraph/scimcore/scim/schema"
	"github.com/xraph/scimcore/scim/version"
)

// Op identifies one CRUD/search operation a resource type may or may not
// allow.
type Op string

const (
	OpCreate Op = "create"
	OpGet    Op = "get"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpList   Op = "list"
	OpPatch  Op = "patch"
)

// AllOps is the allowed-ops set a resource type registered without
// restriction gets.
func AllOps() map[Op]bool {
	return map[Op]bool{OpCreate: true, OpGet: true, OpUpdate: true, OpDelete: true, OpList: true, OpPatch: true}
}

// typeRegistration is one entry of the Server's type registry: a Handler
// bundle paired with the operations it may be dispatched for.
type typeRegistration struct {
	handler    *handler.Handler
	allowedOps map[Op]bool
}

func (t typeRegistration) allows(op Op) bool {
	return t.allowedOps[op]
}

// Server is the SCIM composition root. It holds no business logic of its
// own beyond dispatch gating and reference-URL annotation; the Provider
// and Handlers do the actual work.
type Server struct {
	mu          sync.RWMutex
	provider    provider.Provider
	registry    *schema.Registry
	types       map[string]typeRegistration
	baseURL     string
	urlStrategy URLStrategy
	baseHost    string
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithBaseURL sets the URL prefix reference URLs are rooted under.
func WithBaseURL(url string) Option {
	return func(s *Server) { s.baseURL = url }
}

// WithURLStrategy selects how reference URLs encode the tenant.
func WithURLStrategy(strategy URLStrategy) Option {
	return func(s *Server) { s.urlStrategy = strategy }
}

// WithBaseHost sets the host Subdomain-strategy URLs are built against
// (e.g. "example.com", yielding "https://{tenant}.example.com/...").
func WithBaseHost(host string) Option {
	return func(s *Server) { s.baseHost = host }
}

// New builds a Server around provider p and schema registry reg.
func New(p provider.Provider, reg *schema.Registry, opts ...Option) *Server {
	s := &Server{
		provider:    p,
		registry:    reg,
		types:       make(map[string]typeRegistration),
		urlStrategy: SingleTenant,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterResourceType makes resourceType dispatchable through h, limited
// to the operations in allowedOps. May be called after construction; the
// new registration is immediately visible to subsequent dispatch calls.
func (s *Server) RegisterResourceType(resourceType string, h *handler.Handler, allowedOps map[Op]bool) error {
	if resourceType == "" {
		return errs.RequiredField("resourceType")
	}

	if h == nil {
		return errs.RequiredField("handler")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.types[resourceType] = typeRegistration{handler: h, allowedOps: allowedOps}

	return nil
}

func (s *Server) lookup(resourceType string, op Op) (typeRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.types[resourceType]
	if !ok {
		return typeRegistration{}, errs.UnsupportedType(resourceType)
	}

	if !reg.allows(op) {
		return typeRegistration{}, errs.UnsupportedOperation(resourceType, string(op))
	}

	return reg, nil
}

// SchemaRegistry returns the schema registry this server was constructed
// with, shared read-only across every registered handler.
func (s *Server) SchemaRegistry() *schema.Registry {
	return s.registry
}

// RegisteredTypes returns the names of every resource type currently
// dispatchable, in no particular order.
func (s *Server) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}

	return names
}

// CreateResource validates resourceType is registered and Create is
// allowed, delegates to the provider, and annotates the result's
// reference URL.
func (s *Server) CreateResource(ctx context.Context, rc reqcontext.RequestContext, resourceType string, data []byte) (provider.VersionedResource, error) {
	if _, err := s.lookup(resourceType, OpCreate); err != nil {
		return provider.VersionedResource{}, err
	}

	vr, err := s.provider.CreateResource(ctx, rc, resourceType, data)
	if err != nil {
		return provider.VersionedResource{}, err
	}

	annotated, err := s.withRef(vr.Resource, rc)
	if err != nil {
		return provider.VersionedResource{}, err
	}
	vr.Resource = annotated

	return vr, nil
}

// GetResource validates resourceType is registered and Get is allowed,
// then delegates to the provider.
func (s *Server) GetResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string) (*provider.VersionedResource, error) {
	if _, err := s.lookup(resourceType, OpGet); err != nil {
		return nil, err
	}

	vr, err := s.provider.GetResource(ctx, rc, resourceType, id)
	if err != nil || vr == nil {
		return vr, err
	}

	annotated, err := s.withRef(vr.Resource, rc)
	if err != nil {
		return nil, err
	}
	vr.Resource = annotated

	return vr, nil
}

// UpdateResource validates resourceType is registered and Update is
// allowed, then delegates to the provider.
func (s *Server) UpdateResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, data []byte, expectedVersion *version.RawVersion) (provider.VersionedResource, error) {
	if _, err := s.lookup(resourceType, OpUpdate); err != nil {
		return provider.VersionedResource{}, err
	}

	vr, err := s.provider.UpdateResource(ctx, rc, resourceType, id, data, expectedVersion)
	if err != nil {
		return provider.VersionedResource{}, err
	}

	annotated, err := s.withRef(vr.Resource, rc)
	if err != nil {
		return provider.VersionedResource{}, err
	}
	vr.Resource = annotated

	return vr, nil
}

// DeleteResource validates resourceType is registered and Delete is
// allowed, then delegates to the provider.
func (s *Server) DeleteResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, expectedVersion *version.RawVersion) error {
	if _, err := s.lookup(resourceType, OpDelete); err != nil {
		return err
	}

	return s.provider.DeleteResource(ctx, rc, resourceType, id, expectedVersion)
}

// ListResources validates resourceType is registered and List is allowed,
// then delegates to the provider.
func (s *Server) ListResources(ctx context.Context, rc reqcontext.RequestContext, resourceType string, query provider.ListQuery) ([]provider.VersionedResource, int, error) {
	if _, err := s.lookup(resourceType, OpList); err != nil {
		return nil, 0, err
	}

	results, total, err := s.provider.ListResources(ctx, rc, resourceType, query)
	if err != nil {
		return nil, 0, err
	}

	for i := range results {
		annotated, err := s.withRef(results[i].Resource, rc)
		if err != nil {
			return nil, 0, err
		}
		results[i].Resource = annotated
	}

	return results, total, nil
}

// PatchResource validates resourceType is registered and Patch is
// allowed, then delegates to the provider.
func (s *Server) PatchResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, patchDoc []byte, expectedVersion *version.RawVersion) (provider.VersionedResource, error) {
	if _, err := s.lookup(resourceType, OpPatch); err != nil {
		return provider.VersionedResource{}, err
	}

	vr, err := s.provider.PatchResource(ctx, rc, resourceType, id, patchDoc, expectedVersion)
	if err != nil {
		return provider.VersionedResource{}, err
	}

	annotated, err := s.withRef(vr.Resource, rc)
	if err != nil {
		return provider.VersionedResource{}, err
	}
	vr.Resource = annotated

	return vr, nil
}

// FindResourcesByAttribute validates resourceType is registered and List
// is allowed, then delegates to the provider.
func (s *Server) FindResourcesByAttribute(ctx context.Context, rc reqcontext.RequestContext, resourceType, attribute, value string) ([]provider.VersionedResource, error) {
	if _, err := s.lookup(resourceType, OpList); err != nil {
		return nil, err
	}

	return s.provider.FindResourcesByAttribute(ctx, rc, resourceType, attribute, value)
}
