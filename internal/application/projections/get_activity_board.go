package projections

import (
	"context"
	"sort"

	"siuportal/internal/domain/club"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// GetActivityBoardQuery carries query parameters.
type GetActivityBoardQuery struct {
	Session session.Session
}

// ActivityCard is one kegiatan on the cross-club activity page.
type ActivityCard struct {
	Activity club.Activity
	ClubID   int
	ClubName string
	Status   string
	CanApply bool
}

// GetActivityBoardResult carries the query result.
type GetActivityBoardResult struct {
	Activities []ActivityCard
}

// GetActivityBoardDeps holds dependencies for GetActivityBoard.
type GetActivityBoardDeps struct {
	Clubs         ClubReader
	Registrations RegistrationReader
}

// QueryGetActivityBoard flattens every club's activities into one
// list, soonest first, with the viewer's registration status per
// activity.
// POST: Undated activities sort after dated ones
func QueryGetActivityBoard(ctx context.Context, query GetActivityBoardQuery, deps GetActivityBoardDeps) (GetActivityBoardResult, error) {
	clubs, err := deps.Clubs.ListClubs(ctx)
	if err != nil {
		return GetActivityBoardResult{}, err
	}

	var regs []registration.Registration
	if query.Session.Authenticated() && query.Session.User != nil {
		regs, err = deps.Registrations.ListMyRegistrations(ctx, query.Session.Token, query.Session.UserID())
		if err != nil {
			return GetActivityBoardResult{}, err
		}
	}

	var cards []ActivityCard
	for _, c := range clubs {
		for _, a := range c.Activities {
			card := ActivityCard{Activity: a, ClubID: c.ID, ClubName: c.Name}
			if query.Session.Authenticated() {
				card.Status = registration.ActivityStatus(regs, c.ID, a.ID)
				card.CanApply = registration.CanApplyActivity(card.Status)
			}
			cards = append(cards, card)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		di, dj := cards[i].Activity.Date, cards[j].Activity.Date
		if di.IsZero() != dj.IsZero() {
			return !di.IsZero()
		}
		return di.Before(dj)
	})

	return GetActivityBoardResult{Activities: cards}, nil
}
