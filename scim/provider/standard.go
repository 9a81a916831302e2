package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/xraph/scimcore/core/pagination"
	"github.com/xraph/scimcore/internal/config"
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/internal/idgen"
	"github.com/xraph/scimcore/internal/metrics"
	"github.com/xraph/scimcore/scim/patch"
	"github.com/xraph/scimcore/scim/reqcontext"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/schema"
	"github.com/xraph/scimcore/scim/values"
	"github.com/xraph/scimcore/scim/version"
)

// tenantKey identifies a storage partition. single distinguishes the
// implicit single-tenant bucket from any (rejected) literal tenant id
// "default", per the standing resolution to the source's fallback-bucket
// ambiguity.
type tenantKey struct {
	single bool
	name   string
}

type tenantData struct {
	mu            sync.RWMutex
	resources     map[string]map[string]VersionedResource
	usernameIndex map[string]string // folded userName -> id, scoped to "User"
}

func newTenantData() *tenantData {
	return &tenantData{
		resources:     map[string]map[string]VersionedResource{},
		usernameIndex: map[string]string{},
	}
}

// StandardProvider is the in-memory reference Provider implementation: one
// sync.RWMutex-guarded bucket per tenant, scaled from the single global
// lock a reference implementation could get away with to one lock per
// tenant, an allowance the concurrency model explicitly makes for
// production-grade providers.
type StandardProvider struct {
	mu      sync.RWMutex
	tenants map[tenantKey]*tenantData

	registry *schema.Registry
	cfg      *config.Config
	ids      *idgen.Generator
	metrics  *metrics.Metrics
}

// Option configures a StandardProvider at construction.
type Option func(*StandardProvider)

// WithMetrics attaches a Metrics recorder; operations are observed only
// when one is configured.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *StandardProvider) {
		p.metrics = m
	}
}

// NewStandardProvider builds an empty in-memory provider backed by reg for
// schema validation and cfg for tenancy limits and id strategy.
func NewStandardProvider(reg *schema.Registry, cfg *config.Config, opts ...Option) *StandardProvider {
	if cfg == nil {
		cfg = config.New()
	}

	p := &StandardProvider{
		tenants:  map[tenantKey]*tenantData{},
		registry: reg,
		cfg:      cfg,
		ids:      idgen.New(idgen.Strategy(cfg.IDStrategy)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func resolveTenant(rc reqcontext.RequestContext) (tenantKey, error) {
	if rc.Tenant == nil {
		return tenantKey{single: true}, nil
	}

	if rc.Tenant.TenantID == "default" {
		return tenantKey{}, errs.ReservedTenantID(rc.Tenant.TenantID)
	}

	return tenantKey{name: rc.Tenant.TenantID}, nil
}

func (p *StandardProvider) bucket(tk tenantKey) *tenantData {
	p.mu.RLock()
	td, ok := p.tenants[tk]
	p.mu.RUnlock()

	if ok {
		return td
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if td, ok = p.tenants[tk]; ok {
		return td
	}

	td = newTenantData()
	p.tenants[tk] = td

	return td
}

func effectiveLimit(perms reqcontext.Permissions, cfgLimit int, resourceType string) int {
	switch resourceType {
	case "User":
		if perms.MaxUsers != nil {
			return *perms.MaxUsers
		}

		return cfgLimit
	case "Group":
		if perms.MaxGroups != nil {
			return *perms.MaxGroups
		}

		return cfgLimit
	default:
		return 0
	}
}

func withID(raw []byte, id string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.InvalidInput("body", "not a JSON object")
	}

	doc["id"] = id

	return json.Marshal(doc)
}

func (p *StandardProvider) observe(resourceType string, op metrics.Operation, err error) {
	if p.metrics == nil {
		return
	}

	p.metrics.ObserveOperation(resourceType, op)

	if se, ok := err.(*errs.ScimError); ok {
		p.metrics.ObserveError(resourceType, op, se.Code)
	}
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// CreateResource validates raw, assigns a server-generated id, enforces
// permission/limit/uniqueness checks and stores the resource atomically
// under the resolved tenant's write lock.
func (p *StandardProvider) CreateResource(ctx context.Context, rc reqcontext.RequestContext, resourceType string, raw []byte) (vr VersionedResource, err error) {
	defer func() { p.observe(resourceType, metrics.OpCreate, err) }()

	if err = checkCtx(ctx); err != nil {
		return VersionedResource{}, err
	}

	if err = rc.Validate(); err != nil {
		return VersionedResource{}, err
	}

	tk, err := resolveTenant(rc)
	if err != nil {
		return VersionedResource{}, err
	}

	perms := rc.PermissionsFor()
	if !perms.CanCreate {
		err = errs.PermissionDenied("create")
		return VersionedResource{}, err
	}

	r, err := resource.FromJSON(p.registry, resourceType, raw, schema.OpCreate)
	if err != nil {
		return VersionedResource{}, err
	}

	id := p.ids.Next()
	r.ID, err = values.NewResourceId(id)
	if err != nil {
		return VersionedResource{}, err
	}

	now := time.Now().UTC()
	r.Meta.ResourceType = resourceType
	r.Meta.Created = now
	r.Meta.LastModified = now

	td := p.bucket(tk)
	td.mu.Lock()
	defer td.mu.Unlock()

	var limit int
	switch resourceType {
	case "User":
		limit = effectiveLimit(perms, p.cfg.MaxUsersPerTenant, resourceType)
	case "Group":
		limit = effectiveLimit(perms, p.cfg.MaxGroupsPerTenant, resourceType)
	}

	if limit > 0 && len(td.resources[resourceType]) >= limit {
		err = errs.LimitExceeded(resourceType, limit)
		return VersionedResource{}, err
	}

	var foldedName string
	if resourceType == "User" && !r.UserName.IsZero() {
		un := r.UserName.String()
		foldedName = r.UserName.FoldedKey()

		if _, taken := td.usernameIndex[foldedName]; taken {
			err = errs.DuplicateAttribute("userName", un)
			return VersionedResource{}, err
		}
	}

	canonical, cerr := r.CanonicalJSONForVersioning()
	if cerr != nil {
		err = errs.InternalError(cerr)
		return VersionedResource{}, err
	}

	rv := version.FromContent(canonical)
	r.Meta.Version = rv.ToHttp().String()

	if foldedName != "" {
		td.usernameIndex[foldedName] = id
	}

	if td.resources[resourceType] == nil {
		td.resources[resourceType] = map[string]VersionedResource{}
	}

	vr = VersionedResource{Resource: r, Version: rv}
	td.resources[resourceType][id] = vr

	if p.metrics != nil {
		p.metrics.SetTenantResourceCount(tk.name, resourceType, len(td.resources[resourceType]))
	}

	return vr, nil
}

// GetResource returns the stored resource for id, or nil if not found
// (never a foreign tenant's resource of the same id).
func (p *StandardProvider) GetResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string) (result *VersionedResource, err error) {
	defer func() { p.observe(resourceType, metrics.OpGet, err) }()

	if err = checkCtx(ctx); err != nil {
		return nil, err
	}

	tk, err := resolveTenant(rc)
	if err != nil {
		return nil, err
	}

	if !rc.PermissionsFor().CanRead {
		err = errs.PermissionDenied("read")
		return nil, err
	}

	td := p.bucket(tk)
	td.mu.RLock()
	defer td.mu.RUnlock()

	vr, ok := td.resources[resourceType][id]
	if !ok {
		return nil, nil
	}

	return &vr, nil
}

// UpdateResource replaces the resource at id with raw in full, enforcing an
// optional expected-version precondition and re-indexing the username
// uniqueness entry if userName changed.
func (p *StandardProvider) UpdateResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, raw []byte, expectedVersion *version.RawVersion) (vr VersionedResource, err error) {
	defer func() { p.observe(resourceType, metrics.OpUpdate, err) }()

	if err = checkCtx(ctx); err != nil {
		return VersionedResource{}, err
	}

	tk, err := resolveTenant(rc)
	if err != nil {
		return VersionedResource{}, err
	}

	if !rc.PermissionsFor().CanUpdate {
		err = errs.PermissionDenied("update")
		return VersionedResource{}, err
	}

	td := p.bucket(tk)
	td.mu.Lock()
	defer td.mu.Unlock()

	existing, ok := td.resources[resourceType][id]
	if !ok {
		err = errs.NotFound(resourceType, id)
		return VersionedResource{}, err
	}

	if expectedVersion != nil && !existing.Version.Equal(*expectedVersion) {
		err = errs.VersionMismatch(expectedVersion.Opaque(), existing.Version.Opaque())
		return VersionedResource{}, err
	}

	rawWithID, werr := withID(raw, id)
	if werr != nil {
		err = werr
		return VersionedResource{}, err
	}

	r, ferr := resource.FromJSON(p.registry, resourceType, rawWithID, schema.OpUpdate)
	if ferr != nil {
		err = ferr
		return VersionedResource{}, err
	}

	var newFolded, oldFolded string
	if resourceType == "User" {
		if !existing.Resource.UserName.IsZero() {
			oldFolded = existing.Resource.UserName.FoldedKey()
		}

		if !r.UserName.IsZero() {
			newFolded = r.UserName.FoldedKey()

			if newFolded != oldFolded {
				if owner, taken := td.usernameIndex[newFolded]; taken && owner != id {
					err = errs.DuplicateAttribute("userName", r.UserName.String())
					return VersionedResource{}, err
				}
			}
		}
	}

	r.Meta.ResourceType = resourceType
	r.Meta.Created = existing.Resource.Meta.Created
	r.Meta.LastModified = time.Now().UTC()
	r.Meta.Location = existing.Resource.Meta.Location

	canonical, cerr := r.CanonicalJSONForVersioning()
	if cerr != nil {
		err = errs.InternalError(cerr)
		return VersionedResource{}, err
	}

	rv := version.FromContent(canonical)
	r.Meta.Version = rv.ToHttp().String()

	if resourceType == "User" && newFolded != oldFolded {
		if oldFolded != "" {
			delete(td.usernameIndex, oldFolded)
		}

		if newFolded != "" {
			td.usernameIndex[newFolded] = id
		}
	}

	vr = VersionedResource{Resource: r, Version: rv}
	td.resources[resourceType][id] = vr

	return vr, nil
}

// DeleteResource removes the resource at id, enforcing an optional
// expected-version precondition and releasing its uniqueness index entry.
func (p *StandardProvider) DeleteResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, expectedVersion *version.RawVersion) (err error) {
	defer func() { p.observe(resourceType, metrics.OpDelete, err) }()

	if err = checkCtx(ctx); err != nil {
		return err
	}

	tk, err := resolveTenant(rc)
	if err != nil {
		return err
	}

	if !rc.PermissionsFor().CanDelete {
		err = errs.PermissionDenied("delete")
		return err
	}

	td := p.bucket(tk)
	td.mu.Lock()
	defer td.mu.Unlock()

	existing, ok := td.resources[resourceType][id]
	if !ok {
		err = errs.NotFound(resourceType, id)
		return err
	}

	if expectedVersion != nil && !existing.Version.Equal(*expectedVersion) {
		err = errs.VersionMismatch(expectedVersion.Opaque(), existing.Version.Opaque())
		return err
	}

	if resourceType == "User" && !existing.Resource.UserName.IsZero() {
		delete(td.usernameIndex, existing.Resource.UserName.FoldedKey())
	}

	delete(td.resources[resourceType], id)

	if p.metrics != nil {
		p.metrics.SetTenantResourceCount(tk.name, resourceType, len(td.resources[resourceType]))
	}

	return nil
}

// ListResources returns a sorted, paginated, optionally attribute-filtered
// page of the resourceType bucket, plus the total count before pagination.
func (p *StandardProvider) ListResources(ctx context.Context, rc reqcontext.RequestContext, resourceType string, query ListQuery) (results []VersionedResource, total int, err error) {
	defer func() { p.observe(resourceType, metrics.OpList, err) }()

	if err = checkCtx(ctx); err != nil {
		return nil, 0, err
	}

	tk, err := resolveTenant(rc)
	if err != nil {
		return nil, 0, err
	}

	if !rc.PermissionsFor().CanList {
		err = errs.PermissionDenied("list")
		return nil, 0, err
	}

	td := p.bucket(tk)
	td.mu.RLock()
	defer td.mu.RUnlock()

	all := make([]VersionedResource, 0, len(td.resources[resourceType]))
	for _, vr := range td.resources[resourceType] {
		if matchesFilters(vr.Resource, query.Filters) {
			all = append(all, vr)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		less := all[i].Resource.GetID() < all[j].Resource.GetID()
		if query.SortBy != "" {
			less = attributeString(all[i].Resource, query.SortBy) < attributeString(all[j].Resource, query.SortBy)
		}

		if query.SortOrder == SortDescending {
			return !less
		}

		return less
	})

	total = len(all)

	start := query.StartIndex
	if start < 0 {
		start = 0
	}

	if start > len(all) {
		start = len(all)
	}

	count := query.Count
	if count <= 0 {
		count = pagination.DefaultLimit
	}

	if count > pagination.MaxLimit {
		count = pagination.MaxLimit
	}

	end := start + count
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], total, nil
}

func matchesFilters(r *resource.Resource, filters []AttributeFilter) bool {
	for _, f := range filters {
		if attributeString(r, f.Attribute) != f.Value {
			return false
		}
	}

	return true
}

func attributeString(r *resource.Resource, attribute string) string {
	switch attribute {
	case "id":
		return r.GetID()
	case "userName":
		return r.GetUserName()
	case "displayName":
		return r.DisplayName
	default:
		if v, ok := r.GetAttribute(attribute); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}

		return ""
	}
}

// FindResourcesByAttribute returns every resource in resourceType whose
// top-level attribute equals value.
func (p *StandardProvider) FindResourcesByAttribute(ctx context.Context, rc reqcontext.RequestContext, resourceType, attribute, value string) (results []VersionedResource, err error) {
	defer func() { p.observe(resourceType, metrics.OpList, err) }()

	if err = checkCtx(ctx); err != nil {
		return nil, err
	}

	tk, rerr := resolveTenant(rc)
	if rerr != nil {
		err = rerr
		return nil, err
	}

	if !rc.PermissionsFor().CanList {
		err = errs.PermissionDenied("list")
		return nil, err
	}

	td := p.bucket(tk)
	td.mu.RLock()
	defer td.mu.RUnlock()

	for _, vr := range td.resources[resourceType] {
		if attributeString(vr.Resource, attribute) == value {
			results = append(results, vr)
		}
	}

	return results, nil
}

// ResourceExists reports whether id is present in resourceType for the
// resolved tenant.
func (p *StandardProvider) ResourceExists(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string) (exists bool, err error) {
	if err = checkCtx(ctx); err != nil {
		return false, err
	}

	tk, err := resolveTenant(rc)
	if err != nil {
		return false, err
	}

	if !rc.PermissionsFor().CanRead {
		err = errs.PermissionDenied("read")
		return false, err
	}

	td := p.bucket(tk)
	td.mu.RLock()
	defer td.mu.RUnlock()

	_, ok := td.resources[resourceType][id]

	return ok, nil
}

// ConditionalUpdate behaves like UpdateResource but reports version
// conflicts and missing resources as a ConditionalResult instead of an
// error, comparing expectedVersion against the stored version inside the
// same critical section as the write so concurrent callers racing the same
// key always yield exactly one Success.
func (p *StandardProvider) ConditionalUpdate(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, raw []byte, expectedVersion version.RawVersion) (res version.ConditionalResult[VersionedResource], err error) {
	if err = checkCtx(ctx); err != nil {
		return version.ConditionalResult[VersionedResource]{}, err
	}

	tk, terr := resolveTenant(rc)
	if terr != nil {
		err = terr
		return version.ConditionalResult[VersionedResource]{}, err
	}

	if !rc.PermissionsFor().CanUpdate {
		err = errs.PermissionDenied("update")
		return version.ConditionalResult[VersionedResource]{}, err
	}

	td := p.bucket(tk)
	td.mu.Lock()
	defer td.mu.Unlock()

	existing, ok := td.resources[resourceType][id]
	if !ok {
		return version.NewNotFound[VersionedResource](), nil
	}

	if !existing.Version.Equal(expectedVersion) {
		return version.NewVersionMismatch[VersionedResource](expectedVersion, existing.Version, "stale version"), nil
	}

	rawWithID, werr := withID(raw, id)
	if werr != nil {
		err = werr
		return version.ConditionalResult[VersionedResource]{}, err
	}

	r, ferr := resource.FromJSON(p.registry, resourceType, rawWithID, schema.OpUpdate)
	if ferr != nil {
		err = ferr
		return version.ConditionalResult[VersionedResource]{}, err
	}

	var newFolded, oldFolded string
	if resourceType == "User" {
		oldFolded, newFolded = existing.Resource.UserName.FoldedKey(), r.UserName.FoldedKey()
		if owner, taken := td.usernameIndex[newFolded]; newFolded != oldFolded && taken && owner != id {
			err = errs.DuplicateAttribute("userName", r.UserName.String())
			return version.ConditionalResult[VersionedResource]{}, err
		}
	}

	r.Meta.ResourceType = resourceType
	r.Meta.Created = existing.Resource.Meta.Created
	r.Meta.LastModified = time.Now().UTC()
	r.Meta.Location = existing.Resource.Meta.Location

	canonical, cerr := r.CanonicalJSONForVersioning()
	if cerr != nil {
		err = errs.InternalError(cerr)
		return version.ConditionalResult[VersionedResource]{}, err
	}

	rv := version.FromContent(canonical)
	r.Meta.Version = rv.ToHttp().String()

	if newFolded != oldFolded {
		delete(td.usernameIndex, oldFolded)
		if newFolded != "" {
			td.usernameIndex[newFolded] = id
		}
	}

	vr := VersionedResource{Resource: r, Version: rv}
	td.resources[resourceType][id] = vr

	return version.NewSuccess(vr), nil
}

// ConditionalDelete behaves like DeleteResource but reports version
// conflicts and missing resources as a ConditionalResult.
func (p *StandardProvider) ConditionalDelete(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, expectedVersion version.RawVersion) (res version.ConditionalResult[struct{}], err error) {
	if err = checkCtx(ctx); err != nil {
		return version.ConditionalResult[struct{}]{}, err
	}

	tk, terr := resolveTenant(rc)
	if terr != nil {
		err = terr
		return version.ConditionalResult[struct{}]{}, err
	}

	if !rc.PermissionsFor().CanDelete {
		err = errs.PermissionDenied("delete")
		return version.ConditionalResult[struct{}]{}, err
	}

	td := p.bucket(tk)
	td.mu.Lock()
	defer td.mu.Unlock()

	existing, ok := td.resources[resourceType][id]
	if !ok {
		return version.NewNotFound[struct{}](), nil
	}

	if !existing.Version.Equal(expectedVersion) {
		return version.NewVersionMismatch[struct{}](expectedVersion, existing.Version, "stale version"), nil
	}

	if resourceType == "User" && !existing.Resource.UserName.IsZero() {
		delete(td.usernameIndex, existing.Resource.UserName.FoldedKey())
	}

	delete(td.resources[resourceType], id)

	return version.NewSuccess(struct{}{}), nil
}

// PatchResource decodes patchRaw as a PatchOp document and applies it via
// the patch engine, enforcing an optional expected-version precondition
// and recomputing meta.lastModified and the version exactly once.
func (p *StandardProvider) PatchResource(ctx context.Context, rc reqcontext.RequestContext, resourceType, id string, patchRaw []byte, expectedVersion *version.RawVersion) (vr VersionedResource, err error) {
	defer func() { p.observe(resourceType, metrics.OpPatch, err) }()

	if err = checkCtx(ctx); err != nil {
		return VersionedResource{}, err
	}

	tk, terr := resolveTenant(rc)
	if terr != nil {
		err = terr
		return VersionedResource{}, err
	}

	if !rc.PermissionsFor().CanUpdate {
		err = errs.PermissionDenied("update")
		return VersionedResource{}, err
	}

	td := p.bucket(tk)
	td.mu.Lock()
	defer td.mu.Unlock()

	existing, ok := td.resources[resourceType][id]
	if !ok {
		err = errs.NotFound(resourceType, id)
		return VersionedResource{}, err
	}

	if expectedVersion != nil && !existing.Version.Equal(*expectedVersion) {
		err = errs.VersionMismatch(expectedVersion.Opaque(), existing.Version.Opaque())
		return VersionedResource{}, err
	}

	doc, derr := patch.ParseDocument(patchRaw)
	if derr != nil {
		err = derr
		return VersionedResource{}, err
	}

	patched, perr := patch.Apply(p.registry, existing.Resource, doc)
	if perr != nil {
		err = perr
		return VersionedResource{}, err
	}

	var oldFolded, newFolded string
	if resourceType == "User" {
		if !existing.Resource.UserName.IsZero() {
			oldFolded = existing.Resource.UserName.FoldedKey()
		}

		if !patched.UserName.IsZero() {
			newFolded = patched.UserName.FoldedKey()

			if newFolded != oldFolded {
				if owner, taken := td.usernameIndex[newFolded]; taken && owner != id {
					err = errs.DuplicateAttribute("userName", patched.UserName.String())
					return VersionedResource{}, err
				}
			}
		}
	}

	patched.Meta.ResourceType = resourceType
	patched.Meta.Created = existing.Resource.Meta.Created
	patched.Meta.LastModified = time.Now().UTC()
	patched.Meta.Location = existing.Resource.Meta.Location

	canonical, cerr := patched.CanonicalJSONForVersioning()
	if cerr != nil {
		err = errs.InternalError(cerr)
		return VersionedResource{}, err
	}

	rv := version.FromContent(canonical)
	patched.Meta.Version = rv.ToHttp().String()

	if resourceType == "User" && newFolded != oldFolded {
		if oldFolded != "" {
			delete(td.usernameIndex, oldFolded)
		}

		if newFolded != "" {
			td.usernameIndex[newFolded] = id
		}
	}

	vr = VersionedResource{Resource: patched, Version: rv}
	td.resources[resourceType][id] = vr

	return vr, nil
}
