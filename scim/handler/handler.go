// Package handler implements the per-resource-type bundle the SCIM Server
// registers a provider-backed resource type against: a schema reference
// plus optional attribute getters, custom methods and DB column mapping.
// Handlers are pure — they hold no mutable state of their own, only
// configuration closures supplied at construction.
package handler

import (
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/schema"
)

// AttributeGetter extracts one attribute's value from a resource, the
// "json path -> extracted value" projection a handler may supply beyond
// the resource's own typed fields and catch-all map.
type AttributeGetter func(*resource.Resource) (any, bool)

// CustomMethod computes a handler-defined value from a resource, the
// "string name -> (Resource -> Result<JsonValue>)" extension point.
type CustomMethod func(*resource.Resource) (any, error)

// Handler is a per-resource-type bundle registered against the SCIM
// Server's type registry.
type Handler struct {
	ResourceType string
	Schema       schema.Schema

	attributeGetters map[string]AttributeGetter
	customMethods    map[string]CustomMethod
	columnMapping    map[string]string
}

// New builds an empty Handler for resourceType backed by sch.
func New(resourceType string, sch schema.Schema) *Handler {
	return &Handler{
		ResourceType:     resourceType,
		Schema:           sch,
		attributeGetters: map[string]AttributeGetter{},
		customMethods:    map[string]CustomMethod{},
		columnMapping:    map[string]string{},
	}
}

// WithAttributeGetter registers a named attribute extraction function and
// returns h for chaining.
func (h *Handler) WithAttributeGetter(name string, getter AttributeGetter) *Handler {
	h.attributeGetters[name] = getter
	return h
}

// WithCustomMethod registers a named custom method and returns h for
// chaining.
func (h *Handler) WithCustomMethod(name string, method CustomMethod) *Handler {
	h.customMethods[name] = method
	return h
}

// WithColumnMapping records the database column a SQL-backed provider
// should use for attribute, and returns h for chaining.
func (h *Handler) WithColumnMapping(attribute, column string) *Handler {
	h.columnMapping[attribute] = column
	return h
}

// GetAttribute runs the named attribute getter against r, if one is
// registered.
func (h *Handler) GetAttribute(r *resource.Resource, name string) (any, bool) {
	getter, ok := h.attributeGetters[name]
	if !ok {
		return nil, false
	}

	return getter(r)
}

// InvokeCustomMethod runs the named custom method against r.
func (h *Handler) InvokeCustomMethod(name string, r *resource.Resource) (any, error) {
	method, ok := h.customMethods[name]
	if !ok {
		return nil, errs.NotImplemented("custom method " + name + " for " + h.ResourceType)
	}

	return method(r)
}

// ColumnFor returns the database column mapped to attribute, if any.
func (h *Handler) ColumnFor(attribute string) (string, bool) {
	col, ok := h.columnMapping[attribute]
	return col, ok
}
