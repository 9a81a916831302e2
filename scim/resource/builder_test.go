package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/scimcore/scim/schema"
	"github.com/xraph/scimcore/scim/values"
)

func TestBuilderHappyPath(t *testing.T) {
	r, errs := NewBuilder("User", schema.UserSchemaURI).
		UserName("alice").
		DisplayName("Alice").
		Email("alice@example.com", "work", true).
		Build()

	require.Empty(t, errs)
	require.NotNil(t, r)
	assert.Equal(t, "alice", r.GetUserName())
	assert.False(t, r.Meta.Created.IsZero())
}

func TestBuilderAccumulatesAllErrors(t *testing.T) {
	_, errs := NewBuilder("User", schema.UserSchemaURI).
		UserName("").
		Email("not-an-email", "work", false).
		Build()

	assert.Len(t, errs, 2)
}

func TestBuilderGroupMembers(t *testing.T) {
	r, errs := NewBuilder("Group", schema.GroupSchemaURI).
		DisplayName("Engineering").
		Member("U1", "https://example.com/v2/Users/U1", "Alice", values.GroupMemberTypeUser).
		Build()

	require.Empty(t, errs)
	require.Equal(t, 1, r.Members.Len())
}
