package resource

import (
	"time"

	"github.com/xraph/scimcore/scim/values"
)

// Builder accumulates field values and validation errors across a fluent
// construction sequence, deferring all value-object validation to a single
// terminal Build() call. This replaces the phantom-generic builder pattern
// of the reference implementation's source language with an explicit
// configuration record and one build step, per the project's design notes.
type Builder struct {
	resourceType string
	externalID   string
	schemas      []string

	userName     string
	userNameSet  bool
	name         *Name
	displayName  string
	active       bool
	activeSet    bool
	emails       []emailInput
	phoneNumbers []values.PhoneNumber
	addresses    []values.Address
	members      []memberInput

	errs []error
}

// Name mirrors values.Name for builder input (kept distinct so the builder
// package surface doesn't force callers to import scim/values just to call
// .Name(...)).
type Name = values.Name

type emailInput struct {
	address string
	typ     string
	primary bool
}

type memberInput struct {
	value   string
	ref     string
	display string
	typ     values.GroupMemberType
}

// NewBuilder starts constructing a Resource of the given resource type,
// seeded with its base schema URI.
func NewBuilder(resourceType string, baseSchemaURI string) *Builder {
	return &Builder{resourceType: resourceType, schemas: []string{baseSchemaURI}}
}

// WithSchema declares an additional (extension) schema URI.
func (b *Builder) WithSchema(uri string) *Builder {
	b.schemas = append(b.schemas, uri)
	return b
}

// ExternalID sets the client correlation key.
func (b *Builder) ExternalID(id string) *Builder {
	b.externalID = id
	return b
}

// UserName sets the userName attribute.
func (b *Builder) UserName(s string) *Builder {
	b.userName = s
	b.userNameSet = true
	return b
}

// Name sets the name complex attribute.
func (b *Builder) Name(n Name) *Builder {
	b.name = &n
	return b
}

// DisplayName sets the displayName attribute.
func (b *Builder) DisplayName(s string) *Builder {
	b.displayName = s
	return b
}

// Active sets the active flag.
func (b *Builder) Active(v bool) *Builder {
	b.active = v
	b.activeSet = true
	return b
}

// Email appends one element to the emails multi-valued attribute.
func (b *Builder) Email(address, typ string, primary bool) *Builder {
	b.emails = append(b.emails, emailInput{address: address, typ: typ, primary: primary})
	return b
}

// PhoneNumber appends one element to the phoneNumbers multi-valued attribute.
func (b *Builder) PhoneNumber(p values.PhoneNumber) *Builder {
	b.phoneNumbers = append(b.phoneNumbers, p)
	return b
}

// Address appends one element to the addresses multi-valued attribute.
func (b *Builder) Address(a values.Address) *Builder {
	b.addresses = append(b.addresses, a)
	return b
}

// Member appends one element to a Group's members multi-valued attribute.
func (b *Builder) Member(value, ref, display string, typ values.GroupMemberType) *Builder {
	b.members = append(b.members, memberInput{value: value, ref: ref, display: display, typ: typ})
	return b
}

// Build runs every accumulated value-object validation and returns either a
// fully valid Resource, or nil plus every ValidationError encountered along
// the way (not just the first).
func (b *Builder) Build() (*Resource, []error) {
	var errs []error

	r := &Resource{
		ResourceType: b.resourceType,
		Schemas:      append([]string(nil), b.schemas...),
		ExternalID:   b.externalID,
		Attributes:   map[string]any{},
	}

	if b.userNameSet {
		u, err := values.NewUserName(b.userName)
		if err != nil {
			errs = append(errs, err)
		} else {
			r.UserName = u
		}
	}

	if b.name != nil {
		n, err := values.NewName(*b.name)
		if err != nil {
			errs = append(errs, err)
		} else {
			r.Name = n
		}
	}

	r.DisplayName = b.displayName

	if b.activeSet {
		r.Active = b.active
		r.ActiveSet = true
	}

	if len(b.emails) > 0 {
		entries := make([]values.EmailEntry, 0, len(b.emails))
		for _, e := range b.emails {
			entry, err := values.NewEmailEntry(e.address, e.typ, e.primary)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			entries = append(entries, entry)
		}

		if len(entries) > 0 {
			mv, err := values.NewMultiValued("emails", entries)
			if err != nil {
				errs = append(errs, err)
			} else {
				r.Emails = mv
			}
		}
	}

	if len(b.phoneNumbers) > 0 {
		mv, err := values.NewMultiValued("phoneNumbers", b.phoneNumbers)
		if err != nil {
			errs = append(errs, err)
		} else {
			r.PhoneNumbers = mv
		}
	}

	if len(b.addresses) > 0 {
		mv, err := values.NewMultiValued("addresses", b.addresses)
		if err != nil {
			errs = append(errs, err)
		} else {
			r.Addresses = mv
		}
	}

	if len(b.members) > 0 {
		entries := make([]values.GroupMember, 0, len(b.members))
		for _, m := range b.members {
			entry, err := values.NewGroupMember(m.value, m.ref, m.display, m.typ)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			entries = append(entries, entry)
		}

		if len(entries) > 0 {
			mv, err := values.NewMultiValued("members", entries)
			if err != nil {
				errs = append(errs, err)
			} else {
				r.Members = mv
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	now := time.Now().UTC()
	r.Meta = Meta{ResourceType: b.resourceType, Created: now, LastModified: now}

	return r, errs
}
