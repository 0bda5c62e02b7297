package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"siuportal/internal/adapters/backend"
)

// BackendForRegister defines the backend surface needed by
// RegisterAccount.
type BackendForRegister interface {
	RegisterAccount(ctx context.Context, input backend.AccountInput) error
}

// RegisterAccountInput carries input for the orchestrator.
type RegisterAccountInput struct {
	Name            string
	StudentID       string
	Email           string
	Faculty         string
	Password        string
	ConfirmPassword string
}

// RegisterAccountDeps holds dependencies for RegisterAccount.
type RegisterAccountDeps struct {
	Backend BackendForRegister
}

var ErrEmailTaken = errors.New("email is already registered")

// ExecuteRegisterAccount validates a signup form and creates the
// account on the backend.
// PRE: none
// POST: Account exists on the backend, or a validation error names the
// first failing field
func ExecuteRegisterAccount(ctx context.Context, input RegisterAccountInput, deps RegisterAccountDeps) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if strings.TrimSpace(input.StudentID) == "" {
		return errors.New("student id cannot be empty")
	}
	if strings.TrimSpace(input.Faculty) == "" {
		return errors.New("faculty cannot be empty")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return errors.New("email is not valid")
	}
	if len(input.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if input.Password != input.ConfirmPassword {
		return errors.New("passwords do not match")
	}

	err := deps.Backend.RegisterAccount(ctx, backend.AccountInput{
		Name:      strings.TrimSpace(input.Name),
		StudentID: strings.TrimSpace(input.StudentID),
		Email:     email,
		Faculty:   strings.TrimSpace(input.Faculty),
		Password:  input.Password,
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 409 {
			return ErrEmailTaken
		}
		slog.Error("auth_event", "event", "register_failed", "email", email, "error", err)
		return err
	}

	slog.Info("auth_event", "event", "register_success", "email", email)
	return nil
}
