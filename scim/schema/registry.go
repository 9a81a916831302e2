package schema

import (
	"sync"

	"github.com/xraph/scimcore/internal/errs"
)

// Registry is the schema catalog: the built-in User and Group schemas plus
// the Enterprise User extension, and any schema a host application
// registers at boot or at runtime. Safe for concurrent use; read-only
// after construction is the common case, but RegisterSchema may still be
// called later (mirrors the SCIM Server's runtime resource-type
// registration) and is guarded by the same lock as lookups.
type Registry struct {
	mu               sync.RWMutex
	schemas          map[string]Schema
	resourceTypeBase map[string]string
}

// NewRegistry builds a Registry pre-populated with the core User and Group
// schemas and the Enterprise User extension.
func NewRegistry() *Registry {
	r := &Registry{
		schemas:          make(map[string]Schema),
		resourceTypeBase: make(map[string]string),
	}

	for _, s := range []Schema{UserSchema(), GroupSchema(), EnterpriseUserSchema()} {
		_ = r.RegisterSchema(s)
	}

	return r
}

// RegisterSchema adds s to the registry, making it a valid member of a
// resource's "schemas" array. If s.ResourceType is set, s also becomes the
// base schema consulted for that resource type.
func (r *Registry) RegisterSchema(s Schema) error {
	if s.ID == "" {
		return errs.RequiredField("schema.id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[s.ID] = s

	if s.ResourceType != "" {
		r.resourceTypeBase[s.ResourceType] = s.ID
	}

	return nil
}

// GetSchemaByID returns the schema registered under uri, if any.
func (r *Registry) GetSchemaByID(uri string) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[uri]
	return s, ok
}

// UserSchema returns the registered base schema for "User". Always present
// in a registry built with NewRegistry.
func (r *Registry) UserSchema() Schema {
	s, _ := r.GetSchemaByID(UserSchemaURI)
	return s
}

// GroupSchema returns the registered base schema for "Group".
func (r *Registry) GroupSchema() Schema {
	s, _ := r.GetSchemaByID(GroupSchemaURI)
	return s
}

// BaseSchemaFor returns the base schema registered for resourceType.
func (r *Registry) BaseSchemaFor(resourceType string) (Schema, bool) {
	r.mu.RLock()
	uri, ok := r.resourceTypeBase[resourceType]
	r.mu.RUnlock()

	if !ok {
		return Schema{}, false
	}

	return r.GetSchemaByID(uri)
}
