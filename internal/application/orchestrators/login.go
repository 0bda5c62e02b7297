package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"siuportal/internal/adapters/backend"
	"siuportal/internal/adapters/storage/sessionstore"
	"siuportal/internal/domain/session"
)

// BackendForLogin defines the backend surface needed by Login.
type BackendForLogin interface {
	Login(ctx context.Context, email, password string) (backend.LoginResult, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutcome carries the result of a successful login.
type LoginOutcome struct {
	RecordID string
	Session  session.Session
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Backend  BackendForLogin
	Sessions sessionstore.Store
	Now      func() time.Time
}

var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin exchanges credentials with the backend and persists the
// resulting session.
// PRE: Valid email and password provided
// POST: On success a session record exists and its id is returned; the
// role comes from the stored profile, never from the token
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginOutcome, error) {
	if input.Email == "" || input.Password == "" {
		return LoginOutcome{}, ErrInvalidCredentials
	}

	result, err := deps.Backend.Login(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "rejected")
			return LoginOutcome{}, ErrInvalidCredentials
		}
		slog.Error("auth_event", "event", "login_error", "email", input.Email, "error", err)
		return LoginOutcome{}, err
	}

	sess := session.Login(result.User, result.Token)

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return LoginOutcome{}, err
	}

	record := sessionstore.Record{
		ID:        sessionstore.NewRecordID(),
		Token:     result.Token,
		UserJSON:  string(userJSON),
		CreatedAt: now(deps.Now),
	}
	if err := deps.Sessions.Save(ctx, record); err != nil {
		return LoginOutcome{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", sess.Role)

	return LoginOutcome{RecordID: record.ID, Session: sess}, nil
}

// now resolves the deps clock, defaulting to wall time.
func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now().UTC()
}
