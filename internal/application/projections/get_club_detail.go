package projections

import (
	"context"

	"siuportal/internal/domain/club"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/report"
	"siuportal/internal/domain/session"
)

// GetClubDetailQuery carries query parameters.
type GetClubDetailQuery struct {
	Session session.Session
	ClubID  int
}

// ActivityRow is one kegiatan on the club page with the viewer's
// registration status.
type ActivityRow struct {
	Activity club.Activity
	Status   string
	CanApply bool
	// ChatGroup is exposed only when the viewer's registration for
	// this activity is accepted.
	ChatGroup string
}

// GetClubDetailResult carries the query result.
type GetClubDetailResult struct {
	Club             club.Club
	MembershipStatus string
	CanApply         bool
	IsMember         bool
	// ChatGroup is the club-level group link, exposed only to
	// accepted members.
	ChatGroup  string
	Activities []ActivityRow
	Reports    []report.Entry
	Totals     report.Totals
}

// GetClubDetailDeps holds dependencies for GetClubDetail.
type GetClubDetailDeps struct {
	Clubs         ClubReader
	Registrations RegistrationReader
}

// QueryGetClubDetail builds one club's page: roster, activities with
// per-activity registration status, reports, and the viewer's own
// standing.
// POST: Chat group links appear only for accepted registrations
func QueryGetClubDetail(ctx context.Context, query GetClubDetailQuery, deps GetClubDetailDeps) (GetClubDetailResult, error) {
	c, err := deps.Clubs.GetClub(ctx, query.ClubID)
	if err != nil {
		return GetClubDetailResult{}, err
	}

	var regs []registration.Registration
	if query.Session.Authenticated() && query.Session.User != nil {
		regs, err = deps.Registrations.ListMyRegistrations(ctx, query.Session.Token, query.Session.UserID())
		if err != nil {
			return GetClubDetailResult{}, err
		}
	}

	result := GetClubDetailResult{
		Club:    c,
		Reports: c.Reports,
		Totals:  report.Summarize(c.Reports),
	}

	if query.Session.Authenticated() {
		result.MembershipStatus = registration.MembershipStatus(regs, c.ID)
		result.CanApply = registration.CanApplyMembership(result.MembershipStatus)
		result.IsMember = result.MembershipStatus == registration.StatusAccepted
		if result.IsMember {
			result.ChatGroup = c.ChatGroup
		}
	}

	result.Activities = make([]ActivityRow, 0, len(c.Activities))
	for _, a := range c.Activities {
		row := ActivityRow{Activity: a}
		if query.Session.Authenticated() {
			row.Status = registration.ActivityStatus(regs, c.ID, a.ID)
			row.CanApply = registration.CanApplyActivity(row.Status)
			if row.Status == registration.StatusAccepted {
				row.ChatGroup = a.ChatGroup
			}
		}
		result.Activities = append(result.Activities, row)
	}

	return result, nil
}
