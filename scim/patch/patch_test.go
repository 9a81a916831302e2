package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/schema"
)

func newUser(t *testing.T, reg *schema.Registry, raw string) *resource.Resource {
	t.Helper()
	r, err := resource.FromJSON(reg, "User", []byte(raw), schema.OpUpdate)
	require.NoError(t, err)
	return r
}

func TestApplyEmptyOperationsIsNoop(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice"}`)

	doc := &Document{}
	out, err := Apply(reg, r, doc)

	require.NoError(t, err)
	assert.Same(t, r, out)
}

func TestApplyReplaceSimpleAttribute(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice","active":false}`)

	doc := &Document{Operations: []Operation{
		{Op: "replace", Path: "active", Value: true},
	}}

	out, err := Apply(reg, r, doc)

	require.NoError(t, err)
	assert.True(t, out.Active)
}

func TestApplyAddMultiValuedAppends(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice","emails":[{"value":"a@example.com","type":"work","primary":true}]}`)

	doc := &Document{Operations: []Operation{
		{Op: "add", Path: "emails", Value: map[string]any{"value": "b@example.com", "type": "home", "primary": false}},
	}}

	out, err := Apply(reg, r, doc)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Emails.Len())
}

func TestApplyRemoveFilteredElement(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice","emails":[
		{"value":"a@example.com","type":"work","primary":true},
		{"value":"b@example.com","type":"home","primary":false}
	]}`)

	doc := &Document{Operations: []Operation{
		{Op: "remove", Path: `emails[type eq "home"]`},
	}}

	out, err := Apply(reg, r, doc)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Emails.Len())
	assert.Equal(t, "a@example.com", out.Emails.Elements()[0].Value.String())
}

func TestApplyAddThenRemoveIsIdempotent(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice"}`)

	addDoc := &Document{Operations: []Operation{
		{Op: "add", Path: "displayName", Value: "Alice"},
	}}

	withName, err := Apply(reg, r, addDoc)
	require.NoError(t, err)
	assert.Equal(t, "Alice", withName.DisplayName)

	removeDoc := &Document{Operations: []Operation{
		{Op: "remove", Path: "displayName"},
	}}

	back, err := Apply(reg, withName, removeDoc)
	require.NoError(t, err)
	assert.Empty(t, back.DisplayName)
}

func TestApplyRejectsImmutablePath(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice"}`)

	doc := &Document{Operations: []Operation{
		{Op: "replace", Path: "meta.created", Value: "2020-01-01T00:00:00Z"},
	}}

	out, err := Apply(reg, r, doc)

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestApplyAtomicFailureLeavesOriginalUntouched(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice","displayName":"Alice"}`)

	doc := &Document{Operations: []Operation{
		{Op: "replace", Path: "displayName", Value: "Alicia"},
		{Op: "replace", Path: "id", Value: "not-allowed"},
	}}

	out, err := Apply(reg, r, doc)

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, "Alice", r.DisplayName)
}

func TestApplyRemoveWholeAttribute(t *testing.T) {
	reg := schema.NewRegistry()
	r := newUser(t, reg, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"u1","userName":"alice","displayName":"Alice"}`)

	doc := &Document{Operations: []Operation{
		{Op: "remove", Path: "displayName"},
	}}

	out, err := Apply(reg, r, doc)

	require.NoError(t, err)
	assert.Empty(t, out.DisplayName)
}

func TestParseDocumentRejectsInvalidJSON(t *testing.T) {
	_, err := ParseDocument([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseDocumentHappyPath(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
		"schemas": ["urn:ietf:params:scim:api:messages:2.0:PatchOp"],
		"Operations": [{"op": "replace", "path": "active", "value": true}]
	}`))

	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)
	assert.Equal(t, "replace", doc.Operations[0].Op)
}
