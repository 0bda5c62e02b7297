package orchestrators

import (
	"context"
	"log/slog"

	"siuportal/internal/application/guard"
	"siuportal/internal/domain/club"
	"siuportal/internal/domain/session"
)

// BackendForRosterAdmin defines the backend surface needed by roster
// management.
type BackendForRosterAdmin interface {
	AddMember(ctx context.Context, token string, clubID int, in club.MemberEntry) error
	RemoveMember(ctx context.Context, token string, clubID, entryID int) error
}

// AddRosterMemberInput carries input for adding a roster entry.
type AddRosterMemberInput struct {
	Session session.Session
	ClubID  int
	Entry   club.MemberEntry
}

// RosterDeps holds dependencies for roster management.
type RosterDeps struct {
	Backend  BackendForRosterAdmin
	Confirms *ConfirmationStore
}

// ExecuteAddRosterMember validates and appends a roster entry.
// POST: The entry appears on the club's public roster
func ExecuteAddRosterMember(ctx context.Context, input AddRosterMemberInput, deps RosterDeps) error {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return ErrAdminRequired
	}
	if err := input.Entry.Validate(); err != nil {
		return err
	}
	if err := deps.Backend.AddMember(ctx, input.Session.Token, input.ClubID, input.Entry); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "added", "ukm_id", input.ClubID, "nim", input.Entry.StudentID)
	return nil
}

// RemoveRosterMemberInput carries a confirmed roster removal.
type RemoveRosterMemberInput struct {
	Session        session.Session
	ConfirmationID string
}

// ExecuteRemoveRosterMember claims a confirmed removal and applies it.
func ExecuteRemoveRosterMember(ctx context.Context, input RemoveRosterMemberInput, deps RosterDeps) error {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return ErrAdminRequired
	}

	action, err := deps.Confirms.Confirm(input.ConfirmationID)
	if err != nil {
		return err
	}
	if action.Kind != ActionRemoveMember {
		return ErrConfirmationExpired
	}

	if err := deps.Backend.RemoveMember(ctx, input.Session.Token, action.ClubID, action.TargetID); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "removed", "entry_id", action.TargetID, "ukm_id", action.ClubID)
	return nil
}
