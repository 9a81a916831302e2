// Package values holds the validated primitive types that make up a
// Resource: server-assigned identifiers, usernames, contact details and
// the other scalar and small-structured SCIM attribute types. Every type is
// constructed through a fallible factory function rather than a bare
// struct literal, so an invalid value can never exist.
package values

import "github.com/xraph/scimcore/internal/errs"

// ResourceId is a server-assigned opaque resource identifier. It is never
// empty and never equal to the reserved token "bulkId" (RFC 7644 §3.7).
type ResourceId struct {
	value string
}

// NewResourceId validates and wraps s.
func NewResourceId(s string) (ResourceId, error) {
	if s == "" {
		return ResourceId{}, errs.EmptyID()
	}

	if s == "bulkId" {
		return ResourceId{}, errs.InvalidIDFormat(s)
	}

	return ResourceId{value: s}, nil
}

// String returns the opaque id value.
func (r ResourceId) String() string {
	return r.value
}

// IsZero reports whether r was never assigned a value.
func (r ResourceId) IsZero() bool {
	return r.value == ""
}

// Equal reports whether r and other carry the same id value.
func (r ResourceId) Equal(other ResourceId) bool {
	return r.value == other.value
}

// MarshalJSON renders the id as a bare JSON string.
func (r ResourceId) MarshalJSON() ([]byte, error) {
	return marshalQuoted(r.value), nil
}

// UnmarshalJSON parses a bare JSON string into r, validating it.
func (r *ResourceId) UnmarshalJSON(data []byte) error {
	s, err := unmarshalQuoted(data)
	if err != nil {
		return err
	}

	id, err := NewResourceId(s)
	if err != nil {
		return err
	}

	*r = id
	return nil
}
