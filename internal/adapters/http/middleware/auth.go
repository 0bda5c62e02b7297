package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"siuportal/internal/adapters/storage/sessionstore"
	"siuportal/internal/application/guard"
	domainSession "siuportal/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "siu_session"

// Auth returns middleware that loads the visitor's session record and
// sets the hydrated session in context. A missing cookie, a missing
// record, a stale record or an expired token all degrade to a guest
// session. It does NOT block requests — use RequireAuth or
// RequireAdmin for that.
func Auth(sessions sessionstore.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := domainSession.Guest()

			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				record, err := sessions.Get(r.Context(), cookie.Value)
				switch {
				case errors.Is(err, sessionstore.ErrNotFound):
					// Stale cookie, nothing to tear down
				case err != nil:
					slog.Error("session_load_failed", "error", err)
				case ttl > 0 && time.Since(record.CreatedAt) > ttl:
					if err := sessions.Delete(r.Context(), record.ID); err != nil {
						slog.Error("session_expire_failed", "error", err)
					}
				default:
					sess = domainSession.Hydrate(record.Token, record.UserJSON, time.Now())
				}
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth returns middleware that blocks guests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if guard.Check(sess, domainSession.RoleMember) != guard.Allow {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that blocks everyone but admins.
// Authenticated non-admins get a 403 rather than a login redirect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		switch guard.Check(sess, domainSession.RoleAdmin) {
		case guard.Allow:
			next.ServeHTTP(w, r)
		case guard.DenyLogin:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			http.Error(w, "Forbidden", http.StatusForbidden)
		}
	})
}

// SessionFromContext extracts the session from the request context,
// defaulting to a guest session when the Auth middleware did not run.
func SessionFromContext(ctx context.Context) domainSession.Session {
	if sess, ok := ctx.Value(sessionContextKey).(domainSession.Session); ok {
		return sess
	}
	return domainSession.Guest()
}

// IsAdmin checks if the current session is an admin.
func IsAdmin(ctx context.Context) bool {
	return SessionFromContext(ctx).IsAdmin()
}

// SetSessionCookie sets the session cookie on the response. The value
// is the opaque record id, never the backend token.
func SetSessionCookie(w http.ResponseWriter, recordID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    recordID,
		HttpOnly: true,
		Secure:   false, // Allow HTTP for local development
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// SessionCookieID returns the record id carried by the request cookie,
// or empty when there is none.
func SessionCookieID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess domainSession.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
