package values

import "github.com/xraph/scimcore/internal/errs"

// PhoneNumber is an RFC 7643 §4.1.2 "phoneNumbers" multi-valued element.
type PhoneNumber struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// NewPhoneNumber validates that Value is non-empty.
func NewPhoneNumber(p PhoneNumber) (PhoneNumber, error) {
	if p.Value == "" {
		return PhoneNumber{}, errs.RequiredField("phoneNumbers.value")
	}

	return p, nil
}

// IsPrimary reports whether this element is marked primary.
func (p PhoneNumber) IsPrimary() bool {
	return p.Primary
}

// WithPrimary returns a copy of p with Primary set to primary.
func (p PhoneNumber) WithPrimary(primary bool) PhoneNumber {
	p.Primary = primary
	return p
}
