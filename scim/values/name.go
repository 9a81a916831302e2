package values

import "github.com/xraph/scimcore/internal/errs"

// Name is the RFC 7643 §4.1.1 "name" complex attribute. Every sub-field is
// individually optional, but at least one must be non-empty.
type Name struct {
	Formatted       string `json:"formatted,omitempty"`
	FamilyName      string `json:"familyName,omitempty"`
	GivenName       string `json:"givenName,omitempty"`
	MiddleName      string `json:"middleName,omitempty"`
	HonorificPrefix string `json:"honorificPrefix,omitempty"`
	HonorificSuffix string `json:"honorificSuffix,omitempty"`
}

// NewName validates that at least one sub-field is set.
func NewName(n Name) (Name, error) {
	if n.Formatted == "" && n.FamilyName == "" && n.GivenName == "" &&
		n.MiddleName == "" && n.HonorificPrefix == "" && n.HonorificSuffix == "" {
		return Name{}, errs.InvalidInput("name", "at least one sub-attribute must be set")
	}

	return n, nil
}

// IsZero reports whether n has no sub-fields set.
func (n Name) IsZero() bool {
	return n == Name{}
}
