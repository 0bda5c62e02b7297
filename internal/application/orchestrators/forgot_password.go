package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// BackendForForgotPassword defines the backend surface needed by
// ForgotPassword.
type BackendForForgotPassword interface {
	ForgotPassword(ctx context.Context, email string) error
}

// ForgotPasswordInput carries input for the orchestrator.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordDeps holds dependencies for ForgotPassword.
type ForgotPasswordDeps struct {
	Backend BackendForForgotPassword
}

// ExecuteForgotPassword asks the backend to start a password reset.
// The outcome tells the caller nothing about whether the address
// exists.
func ExecuteForgotPassword(ctx context.Context, input ForgotPasswordInput, deps ForgotPasswordDeps) error {
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("email is not valid")
	}

	if err := deps.Backend.ForgotPassword(ctx, email); err != nil {
		slog.Error("auth_event", "event", "forgot_password_failed", "error", err)
		return err
	}
	slog.Info("auth_event", "event", "forgot_password_requested")
	return nil
}
