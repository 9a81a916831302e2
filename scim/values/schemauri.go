package values

import (
	"regexp"

	"github.com/xraph/scimcore/internal/errs"
)

// urnPattern matches the "urn:<nid>:<nss>" shape used by every SCIM schema
// URI (e.g. urn:ietf:params:scim:schemas:core:2.0:User).
var urnPattern = regexp.MustCompile(`^urn:[a-zA-Z0-9][a-zA-Z0-9-]{0,31}:[a-zA-Z0-9()+,\-.:=@;$_!*'%/?#]+$`)

// SchemaUri is a URN-shaped schema identifier.
type SchemaUri struct {
	value string
}

// NewSchemaUri validates and wraps s.
func NewSchemaUri(s string) (SchemaUri, error) {
	if !urnPattern.MatchString(s) {
		return SchemaUri{}, errs.InvalidSchemaURI(s)
	}

	return SchemaUri{value: s}, nil
}

// String returns the URN value.
func (s SchemaUri) String() string {
	return s.value
}

// Equal reports whether s and other are the same URN.
func (s SchemaUri) Equal(other SchemaUri) bool {
	return s.value == other.value
}

func (s SchemaUri) MarshalJSON() ([]byte, error) {
	return marshalQuoted(s.value), nil
}

func (s *SchemaUri) UnmarshalJSON(data []byte) error {
	v, err := unmarshalQuoted(data)
	if err != nil {
		return err
	}

	u, err := NewSchemaUri(v)
	if err != nil {
		return err
	}

	*s = u
	return nil
}
