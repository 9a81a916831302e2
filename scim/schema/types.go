// Package schema implements the schema registry: the catalog of known SCIM
// schemas and the attribute-by-attribute validation algorithm every
// inbound resource JSON document is run through before it is allowed to
// become a Resource.
package schema

// DataType is the SCIM attribute data type (RFC 7643 §2.2).
type DataType string

const (
	DataTypeString    DataType = "string"
	DataTypeBoolean   DataType = "boolean"
	DataTypeDecimal   DataType = "decimal"
	DataTypeInteger   DataType = "integer"
	DataTypeDateTime  DataType = "dateTime"
	DataTypeBinary    DataType = "binary"
	DataTypeReference DataType = "reference"
	DataTypeComplex   DataType = "complex"
)

// Mutability is the RFC 7643 §2.2 mutability facet.
type Mutability string

const (
	MutabilityReadOnly  Mutability = "readOnly"
	MutabilityReadWrite Mutability = "readWrite"
	MutabilityImmutable Mutability = "immutable"
	MutabilityWriteOnly Mutability = "writeOnly"
)

// Returned is the RFC 7643 §2.2 "returned" facet.
type Returned string

const (
	ReturnedAlways  Returned = "always"
	ReturnedNever   Returned = "never"
	ReturnedDefault Returned = "default"
	ReturnedRequest Returned = "request"
)

// Uniqueness is the RFC 7643 §2.2 uniqueness facet.
type Uniqueness string

const (
	UniquenessNone   Uniqueness = "none"
	UniquenessServer Uniqueness = "server"
	UniquenessGlobal Uniqueness = "global"
)

// AttributeDefinition describes one attribute's type, cardinality,
// mutability and (for complex/reference attributes) its internal shape.
type AttributeDefinition struct {
	Name            string
	DataType        DataType
	MultiValued     bool
	Required        bool
	CaseExact       bool
	Mutability      Mutability
	Returned        Returned
	Uniqueness      Uniqueness
	CanonicalValues []string

	// SubAttributes is populated when DataType is DataTypeComplex.
	SubAttributes []AttributeDefinition

	// ReferenceTypes is populated when DataType is DataTypeReference
	// (e.g. "User", "Group", "external").
	ReferenceTypes []string
}

// Schema is a named, URN-identified collection of attribute definitions.
type Schema struct {
	ID          string
	Name        string
	Description string

	// ResourceType is non-empty when this schema is the base schema for a
	// resource type (e.g. "User", "Group"); empty for extension-only
	// schemas such as the Enterprise User extension.
	ResourceType string

	Attributes []AttributeDefinition
}

// AttributeByName returns the attribute definition with the given name.
func (s Schema) AttributeByName(name string) (AttributeDefinition, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}

	return AttributeDefinition{}, false
}
