package values

import (
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// UserName is a non-empty login name. Uniqueness (case-insensitive, per
// tenant) is enforced by the provider, not by this type.
type UserName struct {
	value string
}

// NewUserName validates and wraps s.
func NewUserName(s string) (UserName, error) {
	if s == "" {
		return UserName{}, errs.RequiredField("userName")
	}

	return UserName{value: s}, nil
}

// String returns the username value.
func (u UserName) String() string {
	return u.value
}

// FoldedKey returns the case-folded form used for uniqueness indexing.
func (u UserName) FoldedKey() string {
	return strings.ToLower(u.value)
}

// IsZero reports whether u was never assigned a value.
func (u UserName) IsZero() bool {
	return u.value == ""
}

func (u UserName) MarshalJSON() ([]byte, error) {
	return marshalQuoted(u.value), nil
}

func (u *UserName) UnmarshalJSON(data []byte) error {
	s, err := unmarshalQuoted(data)
	if err != nil {
		return err
	}

	n, err := NewUserName(s)
	if err != nil {
		return err
	}

	*u = n
	return nil
}
