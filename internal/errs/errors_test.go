package errs

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "resource not found", http.StatusNotFound)

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}

	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}

	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}

	if err.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestWrap(t *testing.T) {
	original := errors.New("storage unavailable")
	err := Wrap(original, CodeInternalError, "failed to persist resource", http.StatusInternalServerError)

	if !errors.Is(err.Err, original) {
		t.Error("expected underlying error to be preserved")
	}

	if !errors.Is(err, original) {
		t.Error("errors.Is should find the underlying error via Unwrap")
	}
}

func TestScimError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ScimError
		expected string
	}{
		{
			name:     "simple error",
			err:      New(CodeNotFound, "resource not found", http.StatusNotFound),
			expected: "NOT_FOUND: resource not found",
		},
		{
			name:     "wrapped error",
			err:      Wrap(errors.New("disk full"), CodeInternalError, "write failed", http.StatusInternalServerError),
			expected: "INTERNAL_ERROR: write failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestScimError_Is(t *testing.T) {
	err := NotFound("User", "u1")

	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is to match by code against the sentinel")
	}

	if errors.Is(err, ErrVersionMismatch) {
		t.Error("expected errors.Is to not match a different code")
	}
}

func TestScimError_WithContext(t *testing.T) {
	err := New(CodeInvalidInput, "bad value", http.StatusBadRequest).
		WithContext("field", "userName").
		WithContext("reason", "empty")

	if err.Context["field"] != "userName" {
		t.Errorf("expected field context to be set, got %v", err.Context["field"])
	}

	if err.Context["reason"] != "empty" {
		t.Errorf("expected reason context to be set, got %v", err.Context["reason"])
	}
}

func TestToErrorEnvelope(t *testing.T) {
	err := DuplicateAttribute("userName", "alice")
	env := err.ToErrorEnvelope()

	if env.Status != "409" {
		t.Errorf("expected status 409, got %s", env.Status)
	}

	if env.ScimType != string(ScimTypeUniqueness) {
		t.Errorf("expected scimType uniqueness, got %s", env.ScimType)
	}

	if len(env.Schemas) != 1 || env.Schemas[0] != "urn:ietf:params:scim:api:messages:2.0:Error" {
		t.Errorf("unexpected schemas: %v", env.Schemas)
	}
}

func TestVersionMismatchContext(t *testing.T) {
	err := VersionMismatch("v0", "v1")

	if err.HTTPStatus != http.StatusPreconditionFailed {
		t.Errorf("expected 412, got %d", err.HTTPStatus)
	}

	if err.Context["expected"] != "v0" || err.Context["current"] != "v1" {
		t.Errorf("unexpected context: %v", err.Context)
	}
}
