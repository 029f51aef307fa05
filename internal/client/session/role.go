package session

import "strings"

// Role is the coarse permission level of the signed-in user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

// DeriveRole maps the backend's free-text role ("ROLE_ADMIN", "ROLE_CLIENT",
// ...) onto a Role with a case-insensitive substring match. ADMIN wins over
// USER, CLIENT maps to USER, and anything else also falls back to USER: a
// user who just authenticated is never a guest.
func DeriveRole(raw string) Role {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "ADMIN"):
		return RoleAdmin
	case strings.Contains(upper, "USER"):
		return RoleUser
	case strings.Contains(upper, "CLIENT"):
		return RoleUser
	default:
		return RoleUser
	}
}

// DisplayName is used in greetings.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleUser:
		return "User"
	default:
		return "Guest"
	}
}
