package resource

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/scimcore/scim/schema"
)

func TestFromJSONProjectsTypedFields(t *testing.T) {
	reg := schema.NewRegistry()
	raw := []byte(`{
		"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],
		"userName":"alice",
		"displayName":"Alice",
		"active":true,
		"emails":[{"value":"alice@example.com","type":"work","primary":true}]
	}`)

	r, err := FromJSON(reg, "User", raw, schema.OpCreate)
	require.NoError(t, err)

	assert.Equal(t, "alice", r.GetUserName())
	assert.Equal(t, "Alice", r.DisplayName)
	assert.True(t, r.Active)
	require.Equal(t, 1, r.Emails.Len())
	assert.Equal(t, "alice@example.com", r.Emails.Elements()[0].Value.String())
}

func TestFromJSONRejectsInvalidResource(t *testing.T) {
	reg := schema.NewRegistry()
	raw := []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"]}`)

	_, err := FromJSON(reg, "User", raw, schema.OpCreate)
	require.Error(t, err)
}

func TestToJSONRoundTrip(t *testing.T) {
	reg := schema.NewRegistry()
	raw := []byte(`{
		"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],
		"userName":"alice",
		"nickName":"Al"
	}`)

	r, err := FromJSON(reg, "User", raw, schema.OpCreate)
	require.NoError(t, err)

	r.Meta = Meta{ResourceType: "User", Created: time.Now(), LastModified: time.Now()}

	out, err := r.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "alice", decoded["userName"])
	assert.Equal(t, "Al", decoded["nickName"])

	r2, err := FromJSON(reg, "User", out, schema.OpCreate)
	require.NoError(t, err)
	assert.Equal(t, r.GetUserName(), r2.GetUserName())
}

func TestCanonicalJSONExcludesVersionFields(t *testing.T) {
	r := &Resource{
		ResourceType: "User",
		Schemas:      []string{"urn:ietf:params:scim:schemas:core:2.0:User"},
		Attributes:   map[string]any{},
		Meta: Meta{
			ResourceType: "User",
			Created:      time.Now(),
			LastModified: time.Now(),
			Version:      "v1",
		},
	}

	out, err := r.CanonicalJSONForVersioning()
	require.NoError(t, err)

	assert.NotContains(t, string(out), "lastModified")
	assert.NotContains(t, string(out), `"version"`)
}
