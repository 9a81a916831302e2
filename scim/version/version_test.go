package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContentDeterministic(t *testing.T) {
	a := FromContent([]byte(`{"a":1}`))
	b := FromContent([]byte(`{"a":1}`))
	c := FromContent([]byte(`{"a":2}`))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestRawHttpRoundTrip(t *testing.T) {
	raw := FromHash("abc123")
	http := raw.ToHttp()

	assert.Equal(t, `W/"abc123"`, http.String())

	parsed, err := ParseHttpVersion(http.String())
	require.NoError(t, err)
	assert.True(t, parsed.ToRaw().Equal(raw))
}

func TestParseHttpVersionBareQuoted(t *testing.T) {
	parsed, err := ParseHttpVersion(`"abc123"`)
	require.NoError(t, err)
	assert.Equal(t, "abc123", parsed.Opaque())
}

func TestParseHttpVersionInvalid(t *testing.T) {
	_, err := ParseHttpVersion("not-an-etag")
	require.Error(t, err)
}

func TestCrossFormatEquality(t *testing.T) {
	raw := FromHash("x")
	http, err := ParseHttpVersion(`W/"x"`)
	require.NoError(t, err)

	assert.True(t, raw.EqualHttp(http))
}

func TestConditionalResultKinds(t *testing.T) {
	s := NewSuccess(42)
	assert.True(t, s.IsSuccess())
	assert.NoError(t, s.ToError())

	mismatch := NewVersionMismatch[int](FromHash("v0"), FromHash("v1"), "stale")
	require.Error(t, mismatch.ToError())

	notFound := NewNotFound[int]()
	require.Error(t, notFound.ToError())
	assert.False(t, notFound.IsSuccess())
}
