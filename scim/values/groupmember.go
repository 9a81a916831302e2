package values

import "github.com/xraph/scimcore/internal/errs"

// GroupMemberType discriminates whether a group member is itself a User or
// a nested Group.
type GroupMemberType string

const (
	GroupMemberTypeUser  GroupMemberType = "User"
	GroupMemberTypeGroup GroupMemberType = "Group"
)

// GroupMember is one element of a Group's "members" multi-valued attribute.
type GroupMember struct {
	Value   ResourceId      `json:"value"`
	Ref     string          `json:"$ref,omitempty"`
	Type    GroupMemberType `json:"type,omitempty"`
	Display string          `json:"display,omitempty"`
}

// NewGroupMember validates value and type and wraps them with the rest of
// the member metadata.
func NewGroupMember(value, ref, display string, typ GroupMemberType) (GroupMember, error) {
	id, err := NewResourceId(value)
	if err != nil {
		return GroupMember{}, err
	}

	if typ != GroupMemberTypeUser && typ != GroupMemberTypeGroup {
		return GroupMember{}, errs.InvalidInput("members.type", "must be \"User\" or \"Group\"")
	}

	return GroupMember{Value: id, Ref: ref, Type: typ, Display: display}, nil
}

// IsPrimary always reports false: RFC 7643 §4.2's "members" attribute has
// no "primary" sub-attribute, but implementing the accessor lets
// GroupMember participate in MultiValued[GroupMember] alongside the other
// element types.
func (m GroupMember) IsPrimary() bool {
	return false
}

// WithPrimary is a no-op: group members have no primary concept to set.
func (m GroupMember) WithPrimary(bool) GroupMember {
	return m
}
