package orchestrators

import (
	"context"
	"log/slog"

	"siuportal/internal/application/guard"
	"siuportal/internal/domain/club"
	"siuportal/internal/domain/session"
)

// BackendForActivityAdmin defines the backend surface needed by
// activity management.
type BackendForActivityAdmin interface {
	CreateActivity(ctx context.Context, token string, clubID int, in club.Activity) (club.Activity, error)
	UpdateActivity(ctx context.Context, token string, clubID int, in club.Activity) error
	DeleteActivity(ctx context.Context, token string, clubID, id int) error
}

// SaveActivityInput carries input for creating or editing a kegiatan.
// A zero Activity.ID means create under ClubID.
type SaveActivityInput struct {
	Session  session.Session
	ClubID   int
	Activity club.Activity
}

// SaveActivityDeps holds dependencies for SaveActivity.
type SaveActivityDeps struct {
	Backend BackendForActivityAdmin
}

// ExecuteSaveActivity validates and persists a kegiatan.
// POST: The activity exists on the backend under its club
func ExecuteSaveActivity(ctx context.Context, input SaveActivityInput, deps SaveActivityDeps) (club.Activity, error) {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return club.Activity{}, ErrAdminRequired
	}
	if err := input.Activity.Validate(); err != nil {
		return club.Activity{}, err
	}

	if input.Activity.ID == 0 {
		created, err := deps.Backend.CreateActivity(ctx, input.Session.Token, input.ClubID, input.Activity)
		if err != nil {
			return club.Activity{}, err
		}
		slog.Info("activity_event", "event", "created", "kegiatan_id", created.ID, "ukm_id", input.ClubID)
		return created, nil
	}

	if err := deps.Backend.UpdateActivity(ctx, input.Session.Token, input.ClubID, input.Activity); err != nil {
		return club.Activity{}, err
	}
	slog.Info("activity_event", "event", "updated", "kegiatan_id", input.Activity.ID, "ukm_id", input.ClubID)
	return input.Activity, nil
}

// DeleteActivityInput carries a confirmed kegiatan deletion.
type DeleteActivityInput struct {
	Session        session.Session
	ConfirmationID string
}

// DeleteActivityDeps holds dependencies for DeleteActivity.
type DeleteActivityDeps struct {
	Backend  BackendForActivityAdmin
	Confirms *ConfirmationStore
}

// ExecuteDeleteActivity claims a confirmed deletion and applies it.
func ExecuteDeleteActivity(ctx context.Context, input DeleteActivityInput, deps DeleteActivityDeps) error {
	if !guard.CanEnter(input.Session, session.RoleAdmin) {
		return ErrAdminRequired
	}

	action, err := deps.Confirms.Confirm(input.ConfirmationID)
	if err != nil {
		return err
	}
	if action.Kind != ActionDeleteActivity {
		return ErrConfirmationExpired
	}

	if err := deps.Backend.DeleteActivity(ctx, input.Session.Token, action.ClubID, action.TargetID); err != nil {
		return err
	}
	slog.Info("activity_event", "event", "deleted", "kegiatan_id", action.TargetID, "ukm_id", action.ClubID)
	return nil
}
