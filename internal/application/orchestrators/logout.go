package orchestrators

import (
	"context"
	"log/slog"

	"siuportal/internal/adapters/storage/sessionstore"
)

// LogoutInput carries input for the logout orchestrator.
type LogoutInput struct {
	RecordID string
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions sessionstore.Store
}

// ExecuteLogout drops the session record. Logging out an already
// missing record is not an error.
// POST: No record with the given id remains
func ExecuteLogout(ctx context.Context, input LogoutInput, deps LogoutDeps) error {
	if input.RecordID == "" {
		return nil
	}
	if err := deps.Sessions.Delete(ctx, input.RecordID); err != nil {
		slog.Error("auth_event", "event", "logout_failed", "error", err)
		return err
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
