package projections

import (
	"context"

	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// GetClubBoardQuery carries query parameters.
type GetClubBoardQuery struct {
	Session session.Session
}

// ClubCard is one club on the browse page, with the viewer's
// membership status attached.
type ClubCard struct {
	ID               int
	Name             string
	Description      string
	ImageURL         string
	MemberCount      int
	ActivityCount    int
	MembershipStatus string
	CanApply         bool
}

// GetClubBoardResult carries the query result.
type GetClubBoardResult struct {
	Clubs []ClubCard
}

// GetClubBoardDeps holds dependencies for GetClubBoard.
type GetClubBoardDeps struct {
	Clubs         ClubReader
	Registrations RegistrationReader
}

// QueryGetClubBoard builds the club browse page. Guests see every club
// with no status; logged-in members see their reconciled membership
// status per club.
// POST: Clubs keep the backend's ordering
func QueryGetClubBoard(ctx context.Context, query GetClubBoardQuery, deps GetClubBoardDeps) (GetClubBoardResult, error) {
	clubs, err := deps.Clubs.ListClubs(ctx)
	if err != nil {
		return GetClubBoardResult{}, err
	}

	var regs []registration.Registration
	if query.Session.Authenticated() && query.Session.User != nil {
		regs, err = deps.Registrations.ListMyRegistrations(ctx, query.Session.Token, query.Session.UserID())
		if err != nil {
			return GetClubBoardResult{}, err
		}
	}

	cards := make([]ClubCard, 0, len(clubs))
	for _, c := range clubs {
		card := ClubCard{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			ImageURL:      c.ImageURL,
			MemberCount:   len(c.Members),
			ActivityCount: len(c.Activities),
		}
		if query.Session.Authenticated() {
			card.MembershipStatus = registration.MembershipStatus(regs, c.ID)
			card.CanApply = registration.CanApplyMembership(card.MembershipStatus)
		}
		cards = append(cards, card)
	}

	return GetClubBoardResult{Clubs: cards}, nil
}
