package model

import "strings"

// Role identifiers as assigned by the backend.
const (
	RoleIDAdmin     = 1
	RoleIDTreasurer = 2
	RoleIDAuditor   = 3
	RoleIDMember    = 4
)

// Role strings as used for gating. The session role is matched against these
// in upper case.
const (
	RoleAdmin     = "ADMIN"
	RoleTreasurer = "TREASURER"
	RoleAuditor   = "AUDITOR"
	RoleMember    = "MEMBER"
)

// Member is a user's membership in an organization.
type Member struct {
	UserID   string  `json:"userId"`
	OrgID    string  `json:"orgId"`
	RoleID   int     `json:"roleId"`
	JoinedAt string  `json:"joinedAt"`
	User     UserRef `json:"user"`
}

// RoleName maps a numeric role id to its display name.
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return "Admin"
	case RoleIDTreasurer:
		return "Treasurer"
	case RoleIDAuditor:
		return "Auditor"
	case RoleIDMember:
		return "Member"
	default:
		return "Unknown"
	}
}

// RoleDisplayName returns the member's role display name.
func (m *Member) RoleDisplayName() string {
	return RoleName(m.RoleID)
}

// NormalizeRole upper-cases a role string for allow-list comparison.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
