package projections

import (
	"context"
	"sort"

	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// GetProfileQuery carries query parameters.
type GetProfileQuery struct {
	Session session.Session
}

// GetProfileResult carries the query result. The registration slices
// are newest first.
type GetProfileResult struct {
	User        session.Profile
	Memberships []registration.Registration
	Activities  []registration.Registration
	Pending     []registration.Registration
}

// GetProfileDeps holds dependencies for GetProfile.
type GetProfileDeps struct {
	Registrations RegistrationReader
}

// QueryGetProfile builds the member's own profile page: accepted
// memberships, accepted activity registrations, and everything still
// pending.
// PRE: query.Session is authenticated
// POST: Rejected registrations are surfaced in none of the lists
func QueryGetProfile(ctx context.Context, query GetProfileQuery, deps GetProfileDeps) (GetProfileResult, error) {
	if !query.Session.Authenticated() || query.Session.User == nil {
		return GetProfileResult{}, ErrLoginRequired
	}

	regs, err := deps.Registrations.ListMyRegistrations(ctx, query.Session.Token, query.Session.UserID())
	if err != nil {
		return GetProfileResult{}, err
	}

	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].CreatedAt.After(regs[j].CreatedAt)
	})

	result := GetProfileResult{User: *query.Session.User}
	for _, r := range regs {
		switch {
		case r.Status == registration.StatusPending:
			result.Pending = append(result.Pending, r)
		case r.Status == registration.StatusAccepted && r.Kind == registration.KindMember:
			result.Memberships = append(result.Memberships, r)
		case r.Status == registration.StatusAccepted && r.Kind == registration.KindActivity:
			result.Activities = append(result.Activities, r)
		}
	}

	return result, nil
}
