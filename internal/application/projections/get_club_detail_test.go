package projections

import (
	"context"
	"testing"
	"time"

	"siuportal/internal/domain/club"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// fakeBackend serves canned clubs and registrations to projections.
type fakeBackend struct {
	clubs []club.Club
	regs  []registration.Registration
}

func (f *fakeBackend) ListClubs(_ context.Context) ([]club.Club, error) {
	return f.clubs, nil
}

func (f *fakeBackend) GetClub(_ context.Context, id int) (club.Club, error) {
	for _, c := range f.clubs {
		if c.ID == id {
			return c, nil
		}
	}
	return club.Club{}, nil
}

func (f *fakeBackend) ListMyRegistrations(_ context.Context, token string, userID int) ([]registration.Registration, error) {
	return f.regs, nil
}

func (f *fakeBackend) ListRegistrations(_ context.Context, token string) ([]registration.Registration, error) {
	return f.regs, nil
}

func robotika() club.Club {
	return club.Club{
		ID:          3,
		Name:        "Robotika",
		Description: "Riset robotika",
		ChatGroup:   "https://chat.example/robotika",
		Members: []club.MemberEntry{
			{Name: "Sari", StudentID: "2110501002", RoleTitle: "Ketua"},
		},
		Activities: []club.Activity{
			{ID: 12, Name: "Workshop Arduino", ChatGroup: "https://chat.example/arduino"},
			{ID: 13, Name: "Lomba Line Follower"},
		},
	}
}

func member() session.Session {
	return session.Session{
		User:  &session.Profile{ID: 7, Name: "Budi", Role: session.RoleMember},
		Token: "tok",
		Role:  session.RoleMember,
	}
}

func TestClubDetailGuest(t *testing.T) {
	be := &fakeBackend{clubs: []club.Club{robotika()}}
	got, err := QueryGetClubDetail(context.Background(), GetClubDetailQuery{
		Session: session.Guest(), ClubID: 3,
	}, GetClubDetailDeps{Clubs: be, Registrations: be})
	if err != nil {
		t.Fatalf("QueryGetClubDetail: %v", err)
	}

	if got.MembershipStatus != "" || got.CanApply || got.IsMember {
		t.Errorf("guest should carry no status: %+v", got)
	}
	if got.ChatGroup != "" {
		t.Error("guests never see the chat group link")
	}
	if len(got.Activities) != 2 {
		t.Errorf("Activities = %d", len(got.Activities))
	}
}

func TestClubDetailAcceptedMember(t *testing.T) {
	be := &fakeBackend{
		clubs: []club.Club{robotika()},
		regs: []registration.Registration{
			{ID: 1, ClubID: 3, Kind: registration.KindMember, Status: registration.StatusAccepted},
			{ID: 2, ClubID: 3, ActivityID: 12, Kind: registration.KindActivity, Status: registration.StatusAccepted},
		},
	}
	got, err := QueryGetClubDetail(context.Background(), GetClubDetailQuery{
		Session: member(), ClubID: 3,
	}, GetClubDetailDeps{Clubs: be, Registrations: be})
	if err != nil {
		t.Fatalf("QueryGetClubDetail: %v", err)
	}

	if !got.IsMember || got.CanApply {
		t.Errorf("accepted member: %+v", got)
	}
	if got.ChatGroup != "https://chat.example/robotika" {
		t.Errorf("ChatGroup = %q", got.ChatGroup)
	}

	// Activity 12 accepted: link visible, no apply
	if got.Activities[0].Status != registration.StatusAccepted || got.Activities[0].ChatGroup == "" {
		t.Errorf("activity 12 = %+v", got.Activities[0])
	}
	// Activity 13 untouched: member may register
	if got.Activities[1].Status != registration.StatusCanRegister || !got.Activities[1].CanApply {
		t.Errorf("activity 13 = %+v", got.Activities[1])
	}
}

func TestClubDetailPendingMembership(t *testing.T) {
	be := &fakeBackend{
		clubs: []club.Club{robotika()},
		regs: []registration.Registration{
			{ID: 1, ClubID: 3, Kind: registration.KindMember, Status: registration.StatusPending},
		},
	}
	got, err := QueryGetClubDetail(context.Background(), GetClubDetailQuery{
		Session: member(), ClubID: 3,
	}, GetClubDetailDeps{Clubs: be, Registrations: be})
	if err != nil {
		t.Fatalf("QueryGetClubDetail: %v", err)
	}

	if got.MembershipStatus != registration.StatusPending || got.IsMember {
		t.Errorf("pending: %+v", got)
	}
	if got.ChatGroup != "" {
		t.Error("pending members never see the chat group link")
	}
	// Activities are gated on membership
	if got.Activities[0].Status != registration.StatusNeedMembership || got.Activities[0].CanApply {
		t.Errorf("activity gating: %+v", got.Activities[0])
	}
}

func TestClubBoard(t *testing.T) {
	be := &fakeBackend{
		clubs: []club.Club{
			robotika(),
			{ID: 4, Name: "Paduan Suara"},
		},
		regs: []registration.Registration{
			{ID: 1, ClubID: 3, Kind: registration.KindMember, Status: registration.StatusAccepted},
		},
	}
	got, err := QueryGetClubBoard(context.Background(), GetClubBoardQuery{Session: member()},
		GetClubBoardDeps{Clubs: be, Registrations: be})
	if err != nil {
		t.Fatalf("QueryGetClubBoard: %v", err)
	}

	if len(got.Clubs) != 2 {
		t.Fatalf("Clubs = %d", len(got.Clubs))
	}
	if got.Clubs[0].MembershipStatus != registration.StatusAccepted || got.Clubs[0].CanApply {
		t.Errorf("club 3 card = %+v", got.Clubs[0])
	}
	if got.Clubs[1].MembershipStatus != registration.StatusNotRegistered || !got.Clubs[1].CanApply {
		t.Errorf("club 4 card = %+v", got.Clubs[1])
	}
	if got.Clubs[0].MemberCount != 1 || got.Clubs[0].ActivityCount != 2 {
		t.Errorf("counts = %+v", got.Clubs[0])
	}
}

func TestActivityBoardSortsByDate(t *testing.T) {
	be := &fakeBackend{clubs: []club.Club{
		{ID: 1, Name: "A", Activities: []club.Activity{
			{ID: 10, Name: "later", Date: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)},
			{ID: 11, Name: "undated"},
		}},
		{ID: 2, Name: "B", Activities: []club.Activity{
			{ID: 20, Name: "sooner", Date: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)},
		}},
	}}
	got, err := QueryGetActivityBoard(context.Background(), GetActivityBoardQuery{Session: session.Guest()},
		GetActivityBoardDeps{Clubs: be, Registrations: be})
	if err != nil {
		t.Fatalf("QueryGetActivityBoard: %v", err)
	}

	names := []string{}
	for _, card := range got.Activities {
		names = append(names, card.Activity.Name)
	}
	want := []string{"sooner", "later", "undated"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}
