package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles. Guest is the default for an absent or unusable session. The
// backend stores "user" for ordinary accounts; that maps to member here.
const (
	RoleGuest  = "guest"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Profile is the authenticated user's record as returned by the login
// endpoint. Field tags match the backend wire format.
type Profile struct {
	ID        int    `json:"id"`
	Name      string `json:"nama"`
	StudentID string `json:"nim"`
	Faculty   string `json:"fakultas"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

// Session is the authenticated identity for one browser. The three
// fields are set together on login and cleared together on logout,
// never independently.
type Session struct {
	User  *Profile
	Token string
	Role  string
}

// Guest returns the unauthenticated session.
func Guest() Session {
	return Session{Role: RoleGuest}
}

// Authenticated reports whether the session carries a bearer token.
// INVARIANT: Session fields are not mutated
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the session is an authenticated admin.
// INVARIANT: Session fields are not mutated
func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == RoleAdmin
}

// UserID returns the authenticated user's id, or zero when the
// session carries no profile.
func (s Session) UserID() int {
	if s.User == nil {
		return 0
	}
	return s.User.ID
}

// Login builds a fully authenticated session from a login response.
// The role is taken from the profile persisted at login time, never
// re-derived from the token.
// PRE: token is non-empty
// POST: all three fields are populated
func Login(user Profile, token string) Session {
	u := user
	return Session{
		User:  &u,
		Token: token,
		Role:  NormalizeRole(user.Role),
	}
}

// Hydrate rebuilds a session from its two persisted values. Anything
// unusable — missing token, corrupt profile JSON, an already-expired
// token — degrades to guest rather than erroring.
// POST: returns a valid Session; guest when the persisted state is unusable
func Hydrate(token, userJSON string, now time.Time) Session {
	if token == "" || strings.TrimSpace(userJSON) == "" {
		return Guest()
	}
	var user Profile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return Guest()
	}
	if TokenExpired(token, now) {
		return Guest()
	}
	return Login(user, token)
}

// NormalizeRole maps backend role strings onto the portal's role set.
// The backend stores "admin" or "user"; anything else on an
// authenticated account becomes member, the least-privileged signed-in
// role. Guest is reserved for the absence of a session.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// TokenExpired reports whether a bearer token is a JWT whose exp claim
// has passed. The signature is NOT verified — the backend is the
// authority on token validity; this only avoids presenting a token the
// backend is guaranteed to reject. Opaque tokens report false.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
