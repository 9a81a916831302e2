package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResourceId(t *testing.T) {
	_, err := NewResourceId("")
	require.Error(t, err)

	_, err = NewResourceId("bulkId")
	require.Error(t, err)

	id, err := NewResourceId("U1")
	require.NoError(t, err)
	assert.Equal(t, "U1", id.String())
}

func TestResourceIdJSONRoundTrip(t *testing.T) {
	id, err := NewResourceId("U1")
	require.NoError(t, err)

	b, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"U1"`, string(b))

	var decoded ResourceId
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, decoded.Equal(id))
}

func TestNewUserName(t *testing.T) {
	_, err := NewUserName("")
	require.Error(t, err)

	u, err := NewUserName("Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.FoldedKey())
}

func TestNewEmailAddress(t *testing.T) {
	_, err := NewEmailAddress("not-an-email")
	require.Error(t, err)

	e, err := NewEmailAddress("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", e.String())
}

func TestNewSchemaUri(t *testing.T) {
	_, err := NewSchemaUri("not-a-urn")
	require.Error(t, err)

	u, err := NewSchemaUri("urn:ietf:params:scim:schemas:core:2.0:User")
	require.NoError(t, err)
	assert.Equal(t, "urn:ietf:params:scim:schemas:core:2.0:User", u.String())
}

func TestNewName(t *testing.T) {
	_, err := NewName(Name{})
	require.Error(t, err)

	n, err := NewName(Name{GivenName: "Alice"})
	require.NoError(t, err)
	assert.False(t, n.IsZero())
}

func TestNewGroupMember(t *testing.T) {
	_, err := NewGroupMember("U1", "", "Alice", "Bogus")
	require.Error(t, err)

	m, err := NewGroupMember("U1", "https://example.com/v2/Users/U1", "Alice", GroupMemberTypeUser)
	require.NoError(t, err)
	assert.Equal(t, "U1", m.Value.String())
	assert.False(t, m.IsPrimary())
}

func TestMultiValuedPrimaryUniqueness(t *testing.T) {
	a, _ := NewEmailEntry("alice@example.com", "work", true)
	b, _ := NewEmailEntry("alice@home.com", "home", true)

	_, err := NewMultiValued("emails", []EmailEntry{a, b})
	require.Error(t, err)

	c, _ := NewEmailEntry("alice@home.com", "home", false)
	mv, err := NewMultiValued("emails", []EmailEntry{a, c})
	require.NoError(t, err)
	assert.Equal(t, 0, mv.PrimaryIndex())
	assert.Equal(t, 2, mv.Len())
}

func TestMultiValuedEmpty(t *testing.T) {
	_, err := NewMultiValued[EmailEntry]("emails", nil)
	require.Error(t, err)
}

func TestMultiValuedFindFilter(t *testing.T) {
	work, _ := NewEmailEntry("alice@work.com", "work", true)
	home, _ := NewEmailEntry("alice@home.com", "home", false)
	mv, err := NewMultiValued("emails", []EmailEntry{work, home})
	require.NoError(t, err)

	found, ok := mv.Find(func(e EmailEntry) bool { return e.Type == "home" })
	require.True(t, ok)
	assert.Equal(t, "alice@home.com", found.Value.String())

	filtered := mv.Filter(func(e EmailEntry) bool { return e.Primary })
	require.Len(t, filtered, 1)
}

func TestMultiValuedWithPrimary(t *testing.T) {
	work, _ := NewEmailEntry("alice@work.com", "work", false)
	home, _ := NewEmailEntry("alice@home.com", "home", false)
	mv, err := NewMultiValued("emails", []EmailEntry{work, home})
	require.NoError(t, err)
	assert.Equal(t, -1, mv.PrimaryIndex())

	withPrimary, err := mv.WithPrimary(1)
	require.NoError(t, err)
	assert.Equal(t, 1, withPrimary.PrimaryIndex())
	assert.True(t, withPrimary.Elements()[1].Primary)
	assert.False(t, withPrimary.Elements()[0].Primary)

	// original collection is unmodified
	assert.Equal(t, -1, mv.PrimaryIndex())
}

func TestMultiValuedWithPrimaryReplacesExistingPrimary(t *testing.T) {
	work, _ := NewEmailEntry("alice@work.com", "work", true)
	home, _ := NewEmailEntry("alice@home.com", "home", false)
	mv, err := NewMultiValued("emails", []EmailEntry{work, home})
	require.NoError(t, err)

	withPrimary, err := mv.WithPrimary(1)
	require.NoError(t, err)
	assert.Equal(t, 1, withPrimary.PrimaryIndex())
}

func TestMultiValuedWithPrimaryOutOfBoundsErrors(t *testing.T) {
	work, _ := NewEmailEntry("alice@work.com", "work", false)
	mv, err := NewMultiValued("emails", []EmailEntry{work})
	require.NoError(t, err)

	_, err = mv.WithPrimary(5)
	require.Error(t, err)

	_, err = mv.WithPrimary(-1)
	require.Error(t, err)
}

func TestGroupMemberWithPrimaryIsNoop(t *testing.T) {
	m, err := NewGroupMember("user-1", "", "Alice", GroupMemberTypeUser)
	require.NoError(t, err)

	mv, err := NewMultiValued("members", []GroupMember{m})
	require.NoError(t, err)

	withPrimary, err := mv.WithPrimary(0)
	require.NoError(t, err)
	assert.False(t, withPrimary.Elements()[0].IsPrimary())
}
