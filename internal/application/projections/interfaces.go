package projections

import (
	"context"
	"errors"

	"siuportal/internal/domain/club"
	"siuportal/internal/domain/registration"
)

// ErrLoginRequired is returned by projections that only make sense
// for an authenticated viewer.
var ErrLoginRequired = errors.New("login is required")

// ClubReader is the backend surface for public club data.
type ClubReader interface {
	ListClubs(ctx context.Context) ([]club.Club, error)
	GetClub(ctx context.Context, id int) (club.Club, error)
}

// RegistrationReader is the backend surface for the caller's own
// registrations.
type RegistrationReader interface {
	ListMyRegistrations(ctx context.Context, token string, userID int) ([]registration.Registration, error)
}

// AdminRegistrationReader is the backend surface for the admin
// registration table.
type AdminRegistrationReader interface {
	ListRegistrations(ctx context.Context, token string) ([]registration.Registration, error)
}
