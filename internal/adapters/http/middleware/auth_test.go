package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"siuportal/internal/adapters/storage/sessionstore"
	domainSession "siuportal/internal/domain/session"
)

// memStore is an in-memory sessionstore.Store for middleware tests.
type memStore struct {
	records map[string]sessionstore.Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]sessionstore.Record)}
}

func (m *memStore) Get(_ context.Context, id string) (sessionstore.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return sessionstore.Record{}, sessionstore.ErrNotFound
	}
	return rec, nil
}

func (m *memStore) Save(_ context.Context, rec sessionstore.Record) error {
	m.records[rec.ID] = rec
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *memStore) DeleteExpired(_ context.Context, cutoff time.Time) error {
	for id, rec := range m.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(m.records, id)
		}
	}
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "7"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// echoSession is a terminal handler that records the session it saw.
func echoSession(into *domainSession.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*into = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthHydratesSession(t *testing.T) {
	store := newMemStore()
	store.Save(context.Background(), sessionstore.Record{
		ID:        "rec-1",
		Token:     signedToken(t, time.Now().Add(time.Hour)),
		UserJSON:  `{"id":7,"nama":"Budi","role":"member"}`,
		CreatedAt: time.Now(),
	})

	var seen domainSession.Session
	handler := Auth(store, 24*time.Hour)(echoSession(&seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "siu_session", Value: "rec-1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !seen.Authenticated() {
		t.Fatal("session should be authenticated")
	}
	if seen.User == nil || seen.User.Name != "Budi" {
		t.Errorf("User = %+v", seen.User)
	}
	if seen.Role != domainSession.RoleMember {
		t.Errorf("Role = %q", seen.Role)
	}
}

func TestAuthMissingCookieIsGuest(t *testing.T) {
	var seen domainSession.Session
	handler := Auth(newMemStore(), 24*time.Hour)(echoSession(&seen))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if seen.Authenticated() {
		t.Error("no cookie should mean guest")
	}
}

func TestAuthStaleCookieIsGuest(t *testing.T) {
	var seen domainSession.Session
	handler := Auth(newMemStore(), 24*time.Hour)(echoSession(&seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "siu_session", Value: "no-such-record"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen.Authenticated() {
		t.Error("unknown record id should mean guest")
	}
}

func TestAuthExpiredRecordIsDeleted(t *testing.T) {
	store := newMemStore()
	store.Save(context.Background(), sessionstore.Record{
		ID:        "rec-old",
		Token:     signedToken(t, time.Now().Add(time.Hour)),
		UserJSON:  `{"id":7,"role":"member"}`,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})

	var seen domainSession.Session
	handler := Auth(store, 24*time.Hour)(echoSession(&seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "siu_session", Value: "rec-old"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen.Authenticated() {
		t.Error("record past TTL should mean guest")
	}
	if _, ok := store.records["rec-old"]; ok {
		t.Error("expired record should be deleted from the store")
	}
}

func TestAuthExpiredTokenIsGuest(t *testing.T) {
	store := newMemStore()
	store.Save(context.Background(), sessionstore.Record{
		ID:        "rec-exp",
		Token:     signedToken(t, time.Now().Add(-time.Hour)),
		UserJSON:  `{"id":7,"role":"member"}`,
		CreatedAt: time.Now(),
	})

	var seen domainSession.Session
	handler := Auth(store, 24*time.Hour)(echoSession(&seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "siu_session", Value: "rec-exp"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen.Authenticated() {
		t.Error("expired token should hydrate to guest")
	}
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Guest gets redirected to login
	rec := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("guest status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	// Member passes
	sess := domainSession.Session{
		User:  &domainSession.Profile{ID: 7, Role: domainSession.RoleMember},
		Token: "tok", Role: domainSession.RoleMember,
	}
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = req.WithContext(ContextWithSession(req.Context(), sess))
	rec = httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("member status = %d, want 200", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Guest gets redirected
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("guest status = %d, want 303", rec.Code)
	}

	// Member gets 403
	member := domainSession.Session{
		User:  &domainSession.Profile{ID: 7, Role: domainSession.RoleMember},
		Token: "tok", Role: domainSession.RoleMember,
	}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ContextWithSession(req.Context(), member))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member status = %d, want 403", rec.Code)
	}

	// Admin passes
	admin := domainSession.Session{
		User:  &domainSession.Profile{ID: 1, Role: domainSession.RoleAdmin},
		Token: "tok", Role: domainSession.RoleAdmin,
	}
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ContextWithSession(req.Context(), admin))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", rec.Code)
	}
}
