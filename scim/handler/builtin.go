package handler

import (
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/schema"
)

// NewUserHandler builds the default Handler for the "User" resource type,
// wiring attribute getters for the fields a provider or consumer most
// commonly projects out of a User without walking the full resource.
func NewUserHandler(reg *schema.Registry) *Handler {
	h := New("User", reg.UserSchema())

	h.WithAttributeGetter("userName", func(r *resource.Resource) (any, bool) {
		if r.UserName.IsZero() {
			return nil, false
		}
		return r.UserName.String(), true
	})

	h.WithAttributeGetter("displayName", func(r *resource.Resource) (any, bool) {
		if r.DisplayName == "" {
			return nil, false
		}
		return r.DisplayName, true
	})

	h.WithAttributeGetter("active", func(r *resource.Resource) (any, bool) {
		return r.Active, true
	})

	h.WithAttributeGetter("primaryEmail", func(r *resource.Resource) (any, bool) {
		if r.Emails.Len() == 0 {
			return nil, false
		}

		elems := r.Emails.Elements()
		if idx := r.Emails.PrimaryIndex(); idx >= 0 {
			return elems[idx].Value.String(), true
		}

		return elems[0].Value.String(), true
	})

	h.WithColumnMapping("userName", "user_name")
	h.WithColumnMapping("displayName", "display_name")
	h.WithColumnMapping("active", "is_active")

	return h
}

// NewGroupHandler builds the default Handler for the "Group" resource
// type.
func NewGroupHandler(reg *schema.Registry) *Handler {
	h := New("Group", reg.GroupSchema())

	h.WithAttributeGetter("displayName", func(r *resource.Resource) (any, bool) {
		if r.DisplayName == "" {
			return nil, false
		}
		return r.DisplayName, true
	})

	h.WithAttributeGetter("memberCount", func(r *resource.Resource) (any, bool) {
		return r.Members.Len(), true
	})

	h.WithColumnMapping("displayName", "display_name")

	return h
}
