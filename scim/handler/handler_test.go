package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/schema"
)

func newTestUser(t *testing.T) *resource.Resource {
	t.Helper()
	reg := schema.NewRegistry()

	r, err := resource.FromJSON(reg, "User", []byte(`{
		"id": "u1",
		"schemas": ["urn:ietf:params:scim:schemas:core:2.0:User"],
		"userName": "alice",
		"displayName": "Alice Example",
		"active": true,
		"emails": [{"value": "alice@example.com", "primary": true}]
	}`), schema.OpUpdate)
	require.NoError(t, err)

	return r
}

func TestUserHandlerAttributeGetters(t *testing.T) {
	reg := schema.NewRegistry()
	h := NewUserHandler(reg)
	r := newTestUser(t)

	un, ok := h.GetAttribute(r, "userName")
	require.True(t, ok)
	assert.Equal(t, "alice", un)

	email, ok := h.GetAttribute(r, "primaryEmail")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)

	active, ok := h.GetAttribute(r, "active")
	require.True(t, ok)
	assert.Equal(t, true, active)

	_, ok = h.GetAttribute(r, "nonexistent")
	assert.False(t, ok)
}

func TestUserHandlerColumnMapping(t *testing.T) {
	h := NewUserHandler(schema.NewRegistry())

	col, ok := h.ColumnFor("displayName")
	require.True(t, ok)
	assert.Equal(t, "display_name", col)

	_, ok = h.ColumnFor("unmapped")
	assert.False(t, ok)
}

func TestCustomMethodInvocation(t *testing.T) {
	h := New("User", schema.NewRegistry().UserSchema())
	h.WithCustomMethod("shout", func(r *resource.Resource) (any, error) {
		return r.DisplayName + "!", nil
	})

	r := newTestUser(t)

	result, err := h.InvokeCustomMethod("shout", r)
	require.NoError(t, err)
	assert.Equal(t, "Alice Example!", result)
}

func TestInvokeUnknownCustomMethodFails(t *testing.T) {
	h := New("User", schema.NewRegistry().UserSchema())
	r := newTestUser(t)

	_, err := h.InvokeCustomMethod("missing", r)
	assert.Error(t, err)
}

func TestGroupHandlerMemberCount(t *testing.T) {
	reg := schema.NewRegistry()
	h := NewGroupHandler(reg)

	g, err := resource.FromJSON(reg, "Group", []byte(`{
		"id": "g1",
		"schemas": ["urn:ietf:params:scim:schemas:core:2.0:Group"],
		"displayName": "Engineers",
		"members": [{"value": "u1"}, {"value": "u2"}]
	}`), schema.OpUpdate)
	require.NoError(t, err)

	count, ok := h.GetAttribute(g, "memberCount")
	require.True(t, ok)
	assert.Equal(t, 2, count)
}
