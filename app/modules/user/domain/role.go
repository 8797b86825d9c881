package userdomain

import "strings"

// Role represents a user's role. It is assigned once at registration and
// never changes.
type Role string

const (
	RolePlayer    Role = "PLAYER"
	RoleAdmin     Role = "ADMIN"
	RoleZeroScore Role = "ZERO_SCORE"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RolePlayer, RoleAdmin, RoleZeroScore:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// RoleForUsername derives the role from the naming convention: any name
// containing "admin" is an administrator, the reserved name is the
// zero-score account, everyone else plays normally.
func RoleForUsername(username, zeroScoreUsername string) Role {
	if IsAdminUsername(username) {
		return RoleAdmin
	}
	if username == zeroScoreUsername {
		return RoleZeroScore
	}
	return RolePlayer
}

// IsAdminUsername reports whether the name grants the administrator role.
func IsAdminUsername(username string) bool {
	return strings.Contains(strings.ToLower(username), "admin")
}
