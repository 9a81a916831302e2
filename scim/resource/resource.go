// Package resource implements the Resource aggregate: a typed container of
// validated value objects plus an untyped catch-all map for every
// schema-defined attribute this package does not model as a dedicated Go
// field, with schema-driven JSON projection in both directions.
package resource

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/schema"
	"github.com/xraph/scimcore/scim/values"
)

// Resource is a typed record for one SCIM resource (User, Group, or a
// custom registered resource type).
type Resource struct {
	ResourceType string
	Schemas      []string
	ID           values.ResourceId
	ExternalID   string
	Meta         Meta

	UserName     values.UserName
	Name         values.Name
	DisplayName  string
	Active       bool
	ActiveSet    bool
	Emails       values.MultiValued[values.EmailEntry]
	PhoneNumbers values.MultiValued[values.PhoneNumber]
	Addresses    values.MultiValued[values.Address]
	Members      values.MultiValued[values.GroupMember]

	// Attributes holds every schema-defined attribute not promoted to a
	// typed field above, plus extension payloads keyed by their schema
	// URI. Untouched by FromJSON/ToJSON round-tripping beyond copy-through.
	Attributes map[string]any
}

// FromJSON decodes raw against the schema registry for resourceType and op,
// then projects the recognized fields into typed slots, leaving the rest in
// Attributes. raw must decode to a JSON object.
func FromJSON(reg *schema.Registry, resourceType string, raw []byte, op schema.OpContext) (*Resource, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.InvalidInput("body", "not a JSON object")
	}

	if err := reg.ValidateJSONResource(resourceType, doc, op); err != nil {
		return nil, err
	}

	return fromValidatedDoc(resourceType, doc)
}

func fromValidatedDoc(resourceType string, doc map[string]any) (*Resource, error) {
	r := &Resource{
		ResourceType: resourceType,
		Attributes:   map[string]any{},
	}

	for _, v := range doc["schemas"].([]any) {
		r.Schemas = append(r.Schemas, v.(string))
	}

	if idRaw, ok := doc["id"].(string); ok {
		id, err := values.NewResourceId(idRaw)
		if err != nil {
			return nil, err
		}

		r.ID = id
	}

	if ext, ok := doc["externalId"].(string); ok {
		r.ExternalID = ext
	}

	r.Meta.ResourceType = resourceType

	if metaRaw, ok := doc["meta"].(map[string]any); ok {
		if created, ok := metaRaw["created"].(string); ok {
			if t, err := time.Parse(time.RFC3339, created); err == nil {
				r.Meta.Created = t
			}
		}

		if lastModified, ok := metaRaw["lastModified"].(string); ok {
			if t, err := time.Parse(time.RFC3339, lastModified); err == nil {
				r.Meta.LastModified = t
			}
		}

		r.Meta.Version = stringField(metaRaw, "version")
		r.Meta.Location = stringField(metaRaw, "location")
	}

	known := map[string]bool{
		"schemas": true, "id": true, "externalId": true, "meta": true,
		"userName": true, "name": true, "displayName": true, "active": true,
		"emails": true, "phoneNumbers": true, "addresses": true, "members": true,
	}

	if un, ok := doc["userName"].(string); ok {
		u, err := values.NewUserName(un)
		if err != nil {
			return nil, err
		}

		r.UserName = u
	}

	if dn, ok := doc["displayName"].(string); ok {
		r.DisplayName = dn
	}

	if act, ok := doc["active"].(bool); ok {
		r.Active = act
		r.ActiveSet = true
	}

	if nameRaw, ok := doc["name"].(map[string]any); ok {
		n, err := values.NewName(values.Name{
			Formatted:       stringField(nameRaw, "formatted"),
			FamilyName:      stringField(nameRaw, "familyName"),
			GivenName:       stringField(nameRaw, "givenName"),
			MiddleName:      stringField(nameRaw, "middleName"),
			HonorificPrefix: stringField(nameRaw, "honorificPrefix"),
			HonorificSuffix: stringField(nameRaw, "honorificSuffix"),
		})
		if err != nil {
			return nil, err
		}

		r.Name = n
	}

	if emailsRaw, ok := doc["emails"].([]any); ok {
		entries := make([]values.EmailEntry, 0, len(emailsRaw))
		for _, e := range emailsRaw {
			obj, _ := e.(map[string]any)
			entry, err := values.NewEmailEntry(stringField(obj, "value"), stringField(obj, "type"), boolField(obj, "primary"))
			if err != nil {
				return nil, err
			}

			entries = append(entries, entry)
		}

		mv, err := values.NewMultiValued("emails", entries)
		if err != nil {
			return nil, err
		}

		r.Emails = mv
	}

	if phonesRaw, ok := doc["phoneNumbers"].([]any); ok {
		entries := make([]values.PhoneNumber, 0, len(phonesRaw))
		for _, p := range phonesRaw {
			obj, _ := p.(map[string]any)
			entry, err := values.NewPhoneNumber(values.PhoneNumber{
				Value:   stringField(obj, "value"),
				Type:    stringField(obj, "type"),
				Primary: boolField(obj, "primary"),
			})
			if err != nil {
				return nil, err
			}

			entries = append(entries, entry)
		}

		mv, err := values.NewMultiValued("phoneNumbers", entries)
		if err != nil {
			return nil, err
		}

		r.PhoneNumbers = mv
	}

	if addrsRaw, ok := doc["addresses"].([]any); ok {
		entries := make([]values.Address, 0, len(addrsRaw))
		for _, a := range addrsRaw {
			obj, _ := a.(map[string]any)
			entries = append(entries, values.Address{
				Formatted:     stringField(obj, "formatted"),
				StreetAddress: stringField(obj, "streetAddress"),
				Locality:      stringField(obj, "locality"),
				Region:        stringField(obj, "region"),
				PostalCode:    stringField(obj, "postalCode"),
				Country:       stringField(obj, "country"),
				Type:          stringField(obj, "type"),
				Primary:       boolField(obj, "primary"),
			})
		}

		mv, err := values.NewMultiValued("addresses", entries)
		if err != nil {
			return nil, err
		}

		r.Addresses = mv
	}

	if membersRaw, ok := doc["members"].([]any); ok {
		entries := make([]values.GroupMember, 0, len(membersRaw))
		for _, m := range membersRaw {
			obj, _ := m.(map[string]any)
			typ := values.GroupMemberType(stringField(obj, "type"))
			if typ == "" {
				typ = values.GroupMemberTypeUser
			}

			entry, err := values.NewGroupMember(stringField(obj, "value"), stringField(obj, "$ref"), stringField(obj, "display"), typ)
			if err != nil {
				return nil, err
			}

			entries = append(entries, entry)
		}

		mv, err := values.NewMultiValued("members", entries)
		if err != nil {
			return nil, err
		}

		r.Members = mv
	}

	for k, v := range doc {
		if known[k] {
			continue
		}

		r.Attributes[k] = v
	}

	return r, nil
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}

	s, _ := obj[key].(string)
	return s
}

func boolField(obj map[string]any, key string) bool {
	if obj == nil {
		return false
	}

	b, _ := obj[key].(bool)
	return b
}

// ToJSON renders the resource as a canonical JSON object: schemas, id,
// externalId, typed fields, extension payloads and meta. Go's
// encoding/json sorts map string keys when marshaling, so this also
// serves as the lexicographically-sorted form required for versioning
// (see CanonicalJSONForVersioning, which additionally strips meta.version
// and meta.lastModified).
func (r *Resource) ToJSON() ([]byte, error) {
	return json.Marshal(r.toMap(true))
}

// CanonicalJSONForVersioning renders the same content as ToJSON but omits
// meta.version and meta.lastModified, which a hash computed from ToJSON
// output would otherwise make self-referential.
func (r *Resource) CanonicalJSONForVersioning() ([]byte, error) {
	return json.Marshal(r.toMap(false))
}

// ToMap renders the same content as ToJSON but as a map[string]any instead
// of encoded bytes, for callers (such as the PATCH engine) that need to
// mutate a resource's JSON projection before re-validating and
// re-decoding it.
func (r *Resource) ToMap() map[string]any {
	out := r.toMap(true)

	raw, err := json.Marshal(out)
	if err != nil {
		return out
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var plain map[string]any
	if err := dec.Decode(&plain); err != nil {
		return out
	}

	return plain
}

func (r *Resource) toMap(includeVersionFields bool) map[string]any {
	out := map[string]any{
		"schemas": r.Schemas,
	}

	if !r.ID.IsZero() {
		out["id"] = r.ID.String()
	}

	if r.ExternalID != "" {
		out["externalId"] = r.ExternalID
	}

	if !r.UserName.IsZero() {
		out["userName"] = r.UserName.String()
	}

	if !r.Name.IsZero() {
		out["name"] = r.Name
	}

	if r.DisplayName != "" {
		out["displayName"] = r.DisplayName
	}

	if r.ActiveSet {
		out["active"] = r.Active
	}

	if r.Emails.Len() > 0 {
		out["emails"] = r.Emails.Elements()
	}

	if r.PhoneNumbers.Len() > 0 {
		out["phoneNumbers"] = r.PhoneNumbers.Elements()
	}

	if r.Addresses.Len() > 0 {
		out["addresses"] = r.Addresses.Elements()
	}

	if r.Members.Len() > 0 {
		out["members"] = r.Members.Elements()
	}

	for k, v := range r.Attributes {
		out[k] = v
	}

	if includeVersionFields {
		out["meta"] = r.Meta.toJSON()
	} else if r.Meta.ResourceType != "" {
		out["meta"] = r.Meta.toJSONForVersioning()
	}

	return out
}

// GetID returns the resource id, or "" if unset.
func (r *Resource) GetID() string {
	return r.ID.String()
}

// GetUserName returns the userName, or "" if unset.
func (r *Resource) GetUserName() string {
	return r.UserName.String()
}

// GetAttribute returns the catch-all value stored under name, if any.
func (r *Resource) GetAttribute(name string) (any, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}
