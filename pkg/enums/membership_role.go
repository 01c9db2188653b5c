package enums

import "fmt"

// MembershipRole represents a workspace-level permissions role.
type MembershipRole string

const (
	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleMember MembershipRole = "member"
)

var validMembershipRoles = []MembershipRole{
	MembershipRoleAdmin,
	MembershipRoleMember,
}

// String implements fmt.Stringer.
func (m MembershipRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MembershipRole.
func (m MembershipRole) IsValid() bool {
	for _, candidate := range validMembershipRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipRole converts raw input into a MembershipRole.
func ParseMembershipRole(value string) (MembershipRole, error) {
	for _, candidate := range validMembershipRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership role %q", value)
}
