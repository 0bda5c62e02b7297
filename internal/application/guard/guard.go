// Package guard decides whether a session may enter a page. It is the
// single authority for route access; middleware and handlers call into
// it rather than inspecting sessions themselves.
package guard

import (
	"siuportal/internal/domain/session"
)

// Decision explains the outcome of an access check so handlers can
// pick the right redirect.
type Decision int

const (
	// Allow means the session may enter.
	Allow Decision = iota
	// DenyLogin means the visitor must authenticate first.
	DenyLogin
	// DenyRole means the visitor is authenticated but lacks the role.
	DenyRole
)

// CanEnter reports whether a session satisfies the required role.
// PRE: required is session.RoleGuest, RoleMember or RoleAdmin
// POST: guest pages always allow; member pages require a token;
// admin pages require a token and the admin role
func CanEnter(s session.Session, required string) bool {
	return Check(s, required) == Allow
}

// Check is CanEnter with a reason attached.
func Check(s session.Session, required string) Decision {
	switch required {
	case session.RoleAdmin:
		if !s.Authenticated() {
			return DenyLogin
		}
		if !s.IsAdmin() {
			return DenyRole
		}
		return Allow
	case session.RoleMember:
		if !s.Authenticated() {
			return DenyLogin
		}
		return Allow
	default:
		return Allow
	}
}
