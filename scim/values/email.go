package values

import (
	"regexp"
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// emailPattern is a relaxed RFC 5321 §4.5.3 mailbox check: local-part "@"
// domain, domain requiring at least one dot and a two-letter-plus TLD.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailAddress is a validated mailbox value.
type EmailAddress struct {
	value string
}

// NewEmailAddress validates and wraps s.
func NewEmailAddress(s string) (EmailAddress, error) {
	candidate := strings.TrimSpace(s)
	if !emailPattern.MatchString(candidate) {
		return EmailAddress{}, errs.InvalidInput("email", "not a valid mailbox address")
	}

	return EmailAddress{value: candidate}, nil
}

// String returns the email address value.
func (e EmailAddress) String() string {
	return e.value
}

func (e EmailAddress) MarshalJSON() ([]byte, error) {
	return marshalQuoted(e.value), nil
}

func (e *EmailAddress) UnmarshalJSON(data []byte) error {
	s, err := unmarshalQuoted(data)
	if err != nil {
		return err
	}

	v, err := NewEmailAddress(s)
	if err != nil {
		return err
	}

	*e = v
	return nil
}
