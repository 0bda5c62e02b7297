package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"siuportal/internal/adapters/backend"
	"siuportal/internal/adapters/email"
	"siuportal/internal/application/guard"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// BackendForSubmit defines the backend surface needed by
// SubmitRegistration.
type BackendForSubmit interface {
	ListMyRegistrations(ctx context.Context, token string, userID int) ([]registration.Registration, error)
	SubmitRegistration(ctx context.Context, token string, in backend.SubmitInput) (registration.Registration, error)
}

// SubmitRegistrationInput carries input for the orchestrator.
// ActivityID stays zero for membership applications.
type SubmitRegistrationInput struct {
	Session      session.Session
	ClubID       int
	ActivityID   int
	Kind         string
	ClubName     string
	ActivityName string
}

// SubmitRegistrationDeps holds dependencies for SubmitRegistration.
type SubmitRegistrationDeps struct {
	Backend BackendForSubmit
	Email   email.Sender
}

// SubmitRegistrationResult carries the stored registration plus the
// caller's registration list with the new entry already applied, so
// pages can re-render without a second fetch.
type SubmitRegistrationResult struct {
	Created       registration.Registration
	Registrations []registration.Registration
}

var (
	ErrNotLoggedIn        = errors.New("login is required to register")
	ErrAlreadyRegistered  = errors.New("a registration for this target already exists")
	ErrMembershipRequired = errors.New("an accepted club membership is required first")
)

// ExecuteSubmitRegistration gates a membership or activity application
// on the caller's current status and files it with the backend.
// PRE: input.Kind is KindMember or KindActivity
// POST: On success the backend holds a pending registration; a
// rejected earlier application blocks resubmission
// INVARIANT: Activity applications require an accepted membership in
// the owning club unless an activity registration already exists
func ExecuteSubmitRegistration(ctx context.Context, input SubmitRegistrationInput, deps SubmitRegistrationDeps) (SubmitRegistrationResult, error) {
	if !guard.CanEnter(input.Session, session.RoleMember) || input.Session.User == nil {
		return SubmitRegistrationResult{}, ErrNotLoggedIn
	}
	if input.Kind != registration.KindMember && input.Kind != registration.KindActivity {
		return SubmitRegistrationResult{}, registration.ErrInvalidKind
	}
	if input.ClubID <= 0 {
		return SubmitRegistrationResult{}, registration.ErrClubRequired
	}
	if input.Kind == registration.KindActivity && input.ActivityID <= 0 {
		return SubmitRegistrationResult{}, registration.ErrActivityRequired
	}

	regs, err := deps.Backend.ListMyRegistrations(ctx, input.Session.Token, input.Session.UserID())
	if err != nil {
		return SubmitRegistrationResult{}, err
	}

	switch input.Kind {
	case registration.KindMember:
		status := registration.MembershipStatus(regs, input.ClubID)
		if !registration.CanApplyMembership(status) {
			slog.Info("registration_event", "event", "submit_blocked",
				"kind", input.Kind, "ukm_id", input.ClubID, "status", status)
			return SubmitRegistrationResult{}, ErrAlreadyRegistered
		}
	case registration.KindActivity:
		status := registration.ActivityStatus(regs, input.ClubID, input.ActivityID)
		if status == registration.StatusNeedMembership {
			slog.Info("registration_event", "event", "submit_blocked",
				"kind", input.Kind, "kegiatan_id", input.ActivityID, "status", status)
			return SubmitRegistrationResult{}, ErrMembershipRequired
		}
		if !registration.CanApplyActivity(status) {
			slog.Info("registration_event", "event", "submit_blocked",
				"kind", input.Kind, "kegiatan_id", input.ActivityID, "status", status)
			return SubmitRegistrationResult{}, ErrAlreadyRegistered
		}
	}

	created, err := deps.Backend.SubmitRegistration(ctx, input.Session.Token, backend.SubmitInput{
		ClubID:     input.ClubID,
		ActivityID: input.ActivityID,
		Kind:       input.Kind,
	})
	if err != nil {
		return SubmitRegistrationResult{}, err
	}

	slog.Info("registration_event", "event", "submitted",
		"kind", input.Kind, "ukm_id", input.ClubID, "kegiatan_id", input.ActivityID, "id", created.ID)

	// Courtesy email, best effort only
	if deps.Email != nil && input.Session.User != nil && input.Session.User.Email != "" {
		req := email.ApplicationReceived(input.Session.User.Email, input.Session.User.Name,
			input.ClubName, input.ActivityName)
		if _, err := deps.Email.Send(ctx, req); err != nil {
			slog.Error("registration_event", "event", "email_failed", "error", err)
		}
	}

	return SubmitRegistrationResult{
		Created:       created,
		Registrations: registration.Applied(regs, created),
	}, nil
}
