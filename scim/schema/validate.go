package schema

import (
	"net/url"
	"time"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/values"
)

// OpContext distinguishes Create from Update validation: Update allows
// server-managed attributes (id, meta.*) to be present; Create rejects a
// client-provided id. A meta object is checked for shape the same way in
// both contexts; Create does not reject it.
type OpContext int

const (
	OpCreate OpContext = iota
	OpUpdate
)

// ValidateJSONResource runs the ordered validation algorithm (§4.1) over
// doc, a resource JSON document decoded with json.Number preserved for
// integer/decimal attributes. Stops and returns at the first error.
func (r *Registry) ValidateJSONResource(resourceType string, doc map[string]any, op OpContext) error {
	declared, err := r.validateSchemasAttribute(doc)
	if err != nil {
		return err
	}

	if err := validateIdentity(doc, op); err != nil {
		return err
	}

	if err := validateMeta(doc, resourceType); err != nil {
		return err
	}

	allowedTop := map[string]bool{"schemas": true, "id": true, "externalId": true, "meta": true}

	base, hasBase := r.BaseSchemaFor(resourceType)
	if hasBase {
		for _, a := range base.Attributes {
			allowedTop[a.Name] = true
		}

		if err := validateAttributes(doc, base.Attributes); err != nil {
			return err
		}
	}

	for _, uri := range declared {
		if hasBase && uri == base.ID {
			continue
		}

		ext, ok := r.GetSchemaByID(uri)
		if !ok {
			continue
		}

		allowedTop[uri] = true

		raw, present := doc[uri]
		if !present {
			if err := checkRequiredAttributes(nil, ext.Attributes, uri); err != nil {
				return err
			}

			continue
		}

		extDoc, ok := raw.(map[string]any)
		if !ok {
			return errs.MalformedComplexStructure(uri)
		}

		if err := validateAttributes(extDoc, ext.Attributes); err != nil {
			return err
		}

		for k := range extDoc {
			found := false
			for _, a := range ext.Attributes {
				if a.Name == k {
					found = true
					break
				}
			}

			if !found {
				return errs.UnknownAttributeForSchema(uri + "." + k)
			}
		}
	}

	for k := range doc {
		if !allowedTop[k] {
			return errs.UnknownAttributeForSchema(k)
		}
	}

	return validateNoMultiplePrimaries(doc, base.Attributes)
}

// validateSchemasAttribute implements algorithm step 1 and returns the
// declared schema URIs for subsequent steps.
func (r *Registry) validateSchemasAttribute(doc map[string]any) ([]string, error) {
	raw, present := doc["schemas"]
	if !present {
		return nil, errs.MissingSchemas()
	}

	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, errs.EmptySchemas()
	}

	seen := make(map[string]bool, len(arr))
	out := make([]string, 0, len(arr))

	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, errs.InvalidSchemaURI("")
		}

		if _, err := values.NewSchemaUri(s); err != nil {
			return nil, errs.InvalidSchemaURI(s)
		}

		if _, known := r.GetSchemaByID(s); !known {
			return nil, errs.UnknownSchemaURI(s)
		}

		if seen[s] {
			return nil, errs.DuplicateSchemaURI(s)
		}

		seen[s] = true
		out = append(out, s)
	}

	return out, nil
}

// validateIdentity implements algorithm step 2.
func validateIdentity(doc map[string]any, op OpContext) error {
	raw, present := doc["id"]
	if !present {
		if op == OpUpdate {
			return errs.MissingID()
		}

		return nil
	}

	if op == OpCreate {
		return errs.ClientProvidedID()
	}

	s, ok := raw.(string)
	if !ok || s == "" {
		return errs.EmptyID()
	}

	if s == "bulkId" {
		return errs.InvalidIDFormat(s)
	}

	return nil
}

// validateMeta implements algorithm step 3.
func validateMeta(doc map[string]any, resourceType string) error {
	raw, present := doc["meta"]
	if !present {
		return nil
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return errs.InvalidMetaStructure("meta must be a JSON object")
	}

	if rt, ok := m["resourceType"]; ok {
		s, ok := rt.(string)
		if !ok || s != resourceType {
			return errs.InvalidResourceType(fmtAny(rt), resourceType)
		}
	}

	for _, field := range []string{"created", "lastModified"} {
		if v, ok := m[field]; ok {
			s, ok := v.(string)
			if !ok {
				return errs.InvalidCreatedDateTime(field, fmtAny(v))
			}

			if _, err := time.Parse(time.RFC3339, s); err != nil {
				return errs.InvalidCreatedDateTime(field, s)
			}
		}
	}

	if v, ok := m["location"]; ok {
		s, ok := v.(string)
		if !ok || !isAbsoluteURI(s) {
			return errs.InvalidMetaStructure("meta.location is not an absolute URI")
		}
	}

	return nil
}

// validateAttributes implements algorithm step 4 for one schema's
// attribute list against one JSON object (the resource root for the base
// schema, or an extension's nested object).
func validateAttributes(doc map[string]any, attrs []AttributeDefinition) error {
	if err := checkRequiredAttributes(doc, attrs, ""); err != nil {
		return err
	}

	for _, a := range attrs {
		v, present := doc[a.Name]
		if !present {
			continue
		}

		if err := validateAttributeValue(a, v); err != nil {
			return err
		}
	}

	return nil
}

func checkRequiredAttributes(doc map[string]any, attrs []AttributeDefinition, schemaURI string) error {
	for _, a := range attrs {
		if !a.Required {
			continue
		}

		if doc == nil {
			return errs.MissingRequiredAttribute(schemaURI, a.Name)
		}

		if _, present := doc[a.Name]; !present {
			return errs.MissingRequiredAttribute(schemaURI, a.Name)
		}
	}

	return nil
}

func validateAttributeValue(a AttributeDefinition, v any) error {
	if a.MultiValued {
		arr, ok := v.([]any)
		if !ok {
			return errs.SingleValueForMultiValued(a.Name)
		}

		for _, elem := range arr {
			if err := validateScalarOrComplex(a, elem); err != nil {
				return err
			}
		}

		return nil
	}

	if _, isArray := v.([]any); isArray {
		return errs.ArrayForSingleValued(a.Name)
	}

	return validateScalarOrComplex(a, v)
}

func validateScalarOrComplex(a AttributeDefinition, v any) error {
	if a.DataType == DataTypeComplex {
		obj, ok := v.(map[string]any)
		if !ok {
			return errs.MalformedComplexStructure(a.Name)
		}

		for k := range obj {
			if _, ok := attrByName(a.SubAttributes, k); !ok {
				return errs.UnknownSubAttribute(a.Name, k)
			}
		}

		for _, sub := range a.SubAttributes {
			sv, present := obj[sub.Name]
			if !present {
				if sub.Required {
					return errs.MissingRequiredAttribute(a.Name, sub.Name)
				}

				continue
			}

			if err := validateLeaf(sub, sv, a.Name); err != nil {
				return err
			}
		}

		return nil
	}

	return validateLeaf(a, v, "")
}

func validateLeaf(a AttributeDefinition, v any, parent string) error {
	label := a.Name
	if parent != "" {
		label = parent + "." + a.Name
	}

	switch a.DataType {
	case DataTypeString, DataTypeBinary:
		s, ok := v.(string)
		if !ok {
			if parent != "" {
				return errs.InvalidSubAttributeType(parent, a.Name)
			}

			return errs.InvalidDataType(label, string(a.DataType))
		}

		return checkCanonical(a, s, parent)
	case DataTypeBoolean:
		if _, ok := v.(bool); !ok {
			return errs.InvalidBooleanValue(label)
		}

		return nil
	case DataTypeInteger, DataTypeDecimal:
		if !isNumeric(v) {
			if parent != "" {
				return errs.InvalidSubAttributeType(parent, a.Name)
			}

			return errs.InvalidDataType(label, string(a.DataType))
		}

		return nil
	case DataTypeDateTime:
		s, ok := v.(string)
		if !ok {
			return errs.InvalidDateTimeFormat(label, fmtAny(v))
		}

		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return errs.InvalidDateTimeFormat(label, s)
		}

		return nil
	case DataTypeReference:
		s, ok := v.(string)
		if !ok || !isAbsoluteURI(s) {
			return errs.InvalidReferenceURI(label, fmtAny(v))
		}

		return nil
	case DataTypeComplex:
		return validateScalarOrComplex(a, v)
	default:
		return nil
	}
}

func checkCanonical(a AttributeDefinition, s, parent string) error {
	if len(a.CanonicalValues) == 0 {
		return nil
	}

	for _, c := range a.CanonicalValues {
		if c == s {
			return nil
		}
	}

	label := a.Name
	if parent != "" {
		label = parent + "." + a.Name
	}

	return errs.InvalidCanonicalValue(label, s)
}

// validateNoMultiplePrimaries implements algorithm step 6 across every
// multi-valued complex attribute with a "primary" sub-attribute.
func validateNoMultiplePrimaries(doc map[string]any, attrs []AttributeDefinition) error {
	for _, a := range attrs {
		if !a.MultiValued || a.DataType != DataTypeComplex {
			continue
		}

		if _, hasPrimary := attrByName(a.SubAttributes, "primary"); !hasPrimary {
			continue
		}

		raw, present := doc[a.Name]
		if !present {
			continue
		}

		arr, ok := raw.([]any)
		if !ok {
			continue
		}

		count := 0
		for _, elem := range arr {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}

			if p, ok := obj["primary"].(bool); ok && p {
				count++
			}
		}

		if count > 1 {
			return errs.MultiplePrimaryValues(a.Name)
		}
	}

	return nil
}

func attrByName(attrs []AttributeDefinition, name string) (AttributeDefinition, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}

	return AttributeDefinition{}, false
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, int, int64:
		return true
	}

	if n, ok := v.(interface{ String() string }); ok {
		_ = n
		return true
	}

	return false
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func fmtAny(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}
