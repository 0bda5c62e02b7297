package orchestrators

import (
	"context"
	"log/slog"

	"siuportal/internal/application/guard"
	"siuportal/internal/domain/club"
	"siuportal/internal/domain/session"
)

// BackendForClubAdmin defines the backend surface needed by club
// management.
type BackendForClubAdmin interface {
	CreateClub(ctx context.Context, token string, in club.Club) (club.Club, error)
	UpdateClub(ctx context.Context, token string, in club.Club) error
	DeleteClub(ctx context.Context, token string, id int) error
}

// SaveClubInput carries input for creating or editing a club. A zero
// ID means create.
type SaveClubInput struct {
	Session session.Session
	Club    club.Club
}

// SaveClubDeps holds dependencies for SaveClub.
type SaveClubDeps struct {
	Backend BackendForClubAdmin
}

// ExecuteSaveClub validates and persists a club.
// PRE: none
// POST: The club exists on the backend with the submitted fields
func ExecuteSaveClub(ctx context.Context, input SaveClubInput, deps SaveClubDeps) (club.Club, error) {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return club.Club{}, ErrAdminRequired
	}
	if err := input.Club.Validate(); err != nil {
		return club.Club{}, err
	}

	if input.Club.ID == 0 {
		created, err := deps.Backend.CreateClub(ctx, input.Session.Token, input.Club)
		if err != nil {
			return club.Club{}, err
		}
		slog.Info("club_event", "event", "created", "ukm_id", created.ID, "nama", created.Name)
		return created, nil
	}

	if err := deps.Backend.UpdateClub(ctx, input.Session.Token, input.Club); err != nil {
		return club.Club{}, err
	}
	slog.Info("club_event", "event", "updated", "ukm_id", input.Club.ID)
	return input.Club, nil
}

// DeleteClubInput carries a confirmed club deletion.
type DeleteClubInput struct {
	Session        session.Session
	ConfirmationID string
}

// DeleteClubDeps holds dependencies for DeleteClub.
type DeleteClubDeps struct {
	Backend  BackendForClubAdmin
	Confirms *ConfirmationStore
}

// ExecuteDeleteClub claims a confirmed deletion and applies it.
// PRE: The confirmation id came from a prior RequestAction
// POST: The club and everything under it is gone from the backend
func ExecuteDeleteClub(ctx context.Context, input DeleteClubInput, deps DeleteClubDeps) error {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return ErrAdminRequired
	}

	action, err := deps.Confirms.Confirm(input.ConfirmationID)
	if err != nil {
		return err
	}
	if action.Kind != ActionDeleteClub {
		return ErrConfirmationExpired
	}

	if err := deps.Backend.DeleteClub(ctx, input.Session.Token, action.TargetID); err != nil {
		return err
	}
	slog.Info("club_event", "event", "deleted", "ukm_id", action.TargetID)
	return nil
}
