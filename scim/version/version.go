// Package version implements the opaque, content-derived version values
// used for optimistic concurrency, in both their raw and HTTP (weak-ETag)
// renderings, plus the three-way conditional-result type every conditional
// provider operation returns.
package version

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// RawVersion is the bare opaque version value (e.g. "abc123").
type RawVersion struct {
	opaque string
}

// HttpVersion is the weak-ETag rendering of a version: W/"abc123".
type HttpVersion struct {
	opaque string
}

// FromContent computes a RawVersion as the first 8 bytes of SHA-256 over
// content, base64-encoded. Equal content always yields equal versions.
func FromContent(content []byte) RawVersion {
	sum := sha256.Sum256(content)
	return RawVersion{opaque: base64.RawURLEncoding.EncodeToString(sum[:8])}
}

// FromHash adopts a provider-supplied opaque value (e.g. a database row
// version) as a RawVersion without rehashing it.
func FromHash(hash string) RawVersion {
	return RawVersion{opaque: hash}
}

// Opaque returns the bare version string.
func (r RawVersion) Opaque() string {
	return r.opaque
}

// String renders the raw form (identical to Opaque).
func (r RawVersion) String() string {
	return r.opaque
}

// IsZero reports whether r was never assigned a value.
func (r RawVersion) IsZero() bool {
	return r.opaque == ""
}

// ToHttp converts r to its weak-ETag rendering. The conversion is lossless
// and identity on the opaque payload.
func (r RawVersion) ToHttp() HttpVersion {
	return HttpVersion{opaque: r.opaque}
}

// Equal compares two RawVersions by opaque value.
func (r RawVersion) Equal(other RawVersion) bool {
	return r.opaque == other.opaque
}

// EqualHttp compares r against an HttpVersion by opaque value, regardless
// of format.
func (r RawVersion) EqualHttp(h HttpVersion) bool {
	return r.opaque == h.opaque
}

// ParseHttpVersion parses a weak-ETag string (W/"..." or a bare quoted
// "...") into an HttpVersion. Fails InvalidPath-style on malformed input.
func ParseHttpVersion(s string) (HttpVersion, error) {
	v := strings.TrimPrefix(s, "W/")

	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return HttpVersion{}, errs.InvalidInput("etag", "not a valid weak ETag: "+s)
	}

	return HttpVersion{opaque: v[1 : len(v)-1]}, nil
}

// Opaque returns the bare version string carried by h.
func (h HttpVersion) Opaque() string {
	return h.opaque
}

// String renders the weak-ETag form: W/"abc123".
func (h HttpVersion) String() string {
	return fmt.Sprintf(`W/"%s"`, h.opaque)
}

// ToRaw converts h to its bare raw rendering.
func (h HttpVersion) ToRaw() RawVersion {
	return RawVersion{opaque: h.opaque}
}

// Equal compares two HttpVersions by opaque value.
func (h HttpVersion) Equal(other HttpVersion) bool {
	return h.opaque == other.opaque
}

// VersionConflict describes a failed conditional operation.
type VersionConflict struct {
	Expected RawVersion
	Current  RawVersion
	Message  string
}

// ConditionalResultKind discriminates the three possible outcomes of a
// conditional provider operation.
type ConditionalResultKind int

const (
	Success ConditionalResultKind = iota
	VersionMismatch
	NotFound
)

// ConditionalResult is the sum type every conditional operation returns:
// exactly one of a successful value, a version conflict, or a not-found
// outcome. Callers switch on Kind rather than relying on zero values, since
// T's zero value may be meaningful for Success.
type ConditionalResult[T any] struct {
	Kind     ConditionalResultKind
	Value    T
	Conflict *VersionConflict
}

// NewSuccess builds a Success result carrying value.
func NewSuccess[T any](value T) ConditionalResult[T] {
	return ConditionalResult[T]{Kind: Success, Value: value}
}

// NewVersionMismatch builds a VersionMismatch result.
func NewVersionMismatch[T any](expected, current RawVersion, message string) ConditionalResult[T] {
	return ConditionalResult[T]{
		Kind: VersionMismatch,
		Conflict: &VersionConflict{
			Expected: expected,
			Current:  current,
			Message:  message,
		},
	}
}

// NewNotFound builds a NotFound result.
func NewNotFound[T any]() ConditionalResult[T] {
	return ConditionalResult[T]{Kind: NotFound}
}

// IsSuccess reports whether the result is the Success variant.
func (c ConditionalResult[T]) IsSuccess() bool {
	return c.Kind == Success
}

// ToError converts a non-Success result into a *errs.ScimError, or nil for
// Success.
func (c ConditionalResult[T]) ToError() error {
	switch c.Kind {
	case Success:
		return nil
	case VersionMismatch:
		return errs.VersionMismatch(c.Conflict.Expected.Opaque(), c.Conflict.Current.Opaque())
	case NotFound:
		return errs.ErrNotFound
	default:
		return nil
	}
}
