package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"siuportal/internal/adapters/email"
	"siuportal/internal/application/guard"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// BackendForDecide defines the backend surface needed by
// DecideRegistration.
type BackendForDecide interface {
	ListRegistrations(ctx context.Context, token string) ([]registration.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, token string, id int, status string) error
}

// DecideRegistrationInput carries a confirmed admin decision.
type DecideRegistrationInput struct {
	Session        session.Session
	ConfirmationID string
}

// DecideRegistrationDeps holds dependencies for DecideRegistration.
type DecideRegistrationDeps struct {
	Backend  BackendForDecide
	Confirms *ConfirmationStore
	Email    email.Sender
}

var ErrAdminRequired = errors.New("admin role is required")

// ExecuteDecideRegistration claims a confirmed accept or reject and
// applies it to the backend.
// PRE: The confirmation id came from a prior RequestAction
// POST: The registration is decided on the backend and the student is
// notified when an email sender is configured
// INVARIANT: Decisions on already-decided registrations are refused
// before the backend is called
func ExecuteDecideRegistration(ctx context.Context, input DecideRegistrationInput, deps DecideRegistrationDeps) error {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return ErrAdminRequired
	}

	action, err := deps.Confirms.Confirm(input.ConfirmationID)
	if err != nil {
		return err
	}

	var decision string
	switch action.Kind {
	case ActionAcceptRegistration:
		decision = registration.StatusAccepted
	case ActionRejectRegistration:
		decision = registration.StatusRejected
	default:
		return ErrConfirmationExpired
	}

	regs, err := deps.Backend.ListRegistrations(ctx, input.Session.Token)
	if err != nil {
		return err
	}
	var target registration.Registration
	found := false
	for _, r := range regs {
		if r.ID == action.TargetID {
			target = r
			found = true
			break
		}
	}
	if !found {
		return errors.New("registration no longer exists")
	}
	if target.IsDecided() {
		return registration.ErrAlreadyDecided
	}

	if err := deps.Backend.UpdateRegistrationStatus(ctx, input.Session.Token, action.TargetID, decision); err != nil {
		return err
	}

	slog.Info("registration_event", "event", "decided",
		"id", action.TargetID, "decision", decision, "admin_id", input.Session.UserID())

	if deps.Email != nil && target.UserEmail != "" {
		req := email.RegistrationDecided(target.UserEmail, target.UserName, target.ClubName, decision)
		if _, err := deps.Email.Send(ctx, req); err != nil {
			slog.Error("registration_event", "event", "email_failed", "error", err)
		}
	}

	return nil
}
