package schema

// URNs for the schemas every registry carries by default.
const (
	UserSchemaURI       = "urn:ietf:params:scim:schemas:core:2.0:User"
	GroupSchemaURI      = "urn:ietf:params:scim:schemas:core:2.0:Group"
	EnterpriseUserURI   = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
	ErrorMessageURI     = "urn:ietf:params:scim:api:messages:2.0:Error"
	PatchOpMessageURI   = "urn:ietf:params:scim:api:messages:2.0:PatchOp"
	ListResponseMessage = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
)

func nameComplexAttribute() AttributeDefinition {
	return AttributeDefinition{
		Name:       "name",
		DataType:   DataTypeComplex,
		Mutability: MutabilityReadWrite,
		Returned:   ReturnedDefault,
		SubAttributes: []AttributeDefinition{
			{Name: "formatted", DataType: DataTypeString, Mutability: MutabilityReadWrite},
			{Name: "familyName", DataType: DataTypeString, Mutability: MutabilityReadWrite},
			{Name: "givenName", DataType: DataTypeString, Mutability: MutabilityReadWrite},
			{Name: "middleName", DataType: DataTypeString, Mutability: MutabilityReadWrite},
			{Name: "honorificPrefix", DataType: DataTypeString, Mutability: MutabilityReadWrite},
			{Name: "honorificSuffix", DataType: DataTypeString, Mutability: MutabilityReadWrite},
		},
	}
}

func multiValuedContactAttribute(name string, types []string) AttributeDefinition {
	return AttributeDefinition{
		Name:        name,
		DataType:    DataTypeComplex,
		MultiValued: true,
		Mutability:  MutabilityReadWrite,
		Returned:    ReturnedDefault,
		SubAttributes: []AttributeDefinition{
			{Name: "value", DataType: DataTypeString, Mutability: MutabilityReadWrite},
			{Name: "type", DataType: DataTypeString, Mutability: MutabilityReadWrite, CanonicalValues: types},
			{Name: "primary", DataType: DataTypeBoolean, Mutability: MutabilityReadWrite},
			{Name: "display", DataType: DataTypeString, Mutability: MutabilityReadWrite},
		},
	}
}

// UserSchema is the RFC 7643 §4.1 core User schema.
func UserSchema() Schema {
	return Schema{
		ID:           UserSchemaURI,
		Name:         "User",
		Description:  "User Account",
		ResourceType: "User",
		Attributes: []AttributeDefinition{
			{Name: "userName", DataType: DataTypeString, Required: true, Mutability: MutabilityReadWrite, Uniqueness: UniquenessServer, Returned: ReturnedDefault},
			nameComplexAttribute(),
			{Name: "displayName", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "nickName", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "profileUrl", DataType: DataTypeReference, ReferenceTypes: []string{"external"}, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "title", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "userType", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "preferredLanguage", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "locale", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "timezone", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "active", DataType: DataTypeBoolean, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "password", DataType: DataTypeString, Mutability: MutabilityWriteOnly, Returned: ReturnedNever},
			multiValuedContactAttribute("emails", []string{"work", "home", "other"}),
			multiValuedContactAttribute("phoneNumbers", []string{"work", "home", "mobile", "fax", "pager", "other"}),
			multiValuedContactAttribute("ims", []string{"aim", "gtalk", "icq", "xmpp", "msn", "skype", "qq", "yahoo"}),
			{
				Name:        "addresses",
				DataType:    DataTypeComplex,
				MultiValued: true,
				Mutability:  MutabilityReadWrite,
				Returned:    ReturnedDefault,
				SubAttributes: []AttributeDefinition{
					{Name: "formatted", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "streetAddress", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "locality", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "region", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "postalCode", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "country", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "type", DataType: DataTypeString, Mutability: MutabilityReadWrite, CanonicalValues: []string{"work", "home", "other"}},
					{Name: "primary", DataType: DataTypeBoolean, Mutability: MutabilityReadWrite},
				},
			},
			{
				Name:        "groups",
				DataType:    DataTypeComplex,
				MultiValued: true,
				Mutability:  MutabilityReadOnly,
				Returned:    ReturnedDefault,
				SubAttributes: []AttributeDefinition{
					{Name: "value", DataType: DataTypeString, Mutability: MutabilityReadOnly},
					{Name: "$ref", DataType: DataTypeReference, ReferenceTypes: []string{"User", "Group"}, Mutability: MutabilityReadOnly},
					{Name: "display", DataType: DataTypeString, Mutability: MutabilityReadOnly},
					{Name: "type", DataType: DataTypeString, Mutability: MutabilityReadOnly, CanonicalValues: []string{"direct", "indirect"}},
				},
			},
		},
	}
}

// GroupSchema is the RFC 7643 §4.2 core Group schema.
func GroupSchema() Schema {
	return Schema{
		ID:           GroupSchemaURI,
		Name:         "Group",
		Description:  "Group",
		ResourceType: "Group",
		Attributes: []AttributeDefinition{
			{Name: "displayName", DataType: DataTypeString, Required: true, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{
				Name:        "members",
				DataType:    DataTypeComplex,
				MultiValued: true,
				Mutability:  MutabilityReadWrite,
				Returned:    ReturnedDefault,
				SubAttributes: []AttributeDefinition{
					{Name: "value", DataType: DataTypeString, Mutability: MutabilityImmutable},
					{Name: "$ref", DataType: DataTypeReference, ReferenceTypes: []string{"User", "Group"}, Mutability: MutabilityImmutable},
					{Name: "type", DataType: DataTypeString, Mutability: MutabilityImmutable, CanonicalValues: []string{"User", "Group"}},
					{Name: "display", DataType: DataTypeString, Mutability: MutabilityImmutable},
				},
			},
		},
	}
}

// EnterpriseUserSchema is the RFC 7643 §4.3 Enterprise User extension,
// registered by default alongside the core User and Group schemas.
func EnterpriseUserSchema() Schema {
	return Schema{
		ID:          EnterpriseUserURI,
		Name:        "EnterpriseUser",
		Description: "Enterprise User",
		Attributes: []AttributeDefinition{
			{Name: "employeeNumber", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "costCenter", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "organization", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "division", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "department", DataType: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{
				Name:       "manager",
				DataType:   DataTypeComplex,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
				SubAttributes: []AttributeDefinition{
					{Name: "value", DataType: DataTypeString, Mutability: MutabilityReadWrite},
					{Name: "$ref", DataType: DataTypeReference, ReferenceTypes: []string{"User"}, Mutability: MutabilityReadWrite},
					{Name: "displayName", DataType: DataTypeString, Mutability: MutabilityReadOnly},
				},
			},
		},
	}
}
