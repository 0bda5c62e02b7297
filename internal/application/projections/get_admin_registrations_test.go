package projections

import (
	"context"
	"net/url"
	"testing"
	"time"

	"siuportal/internal/application/listutil"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

func adminTable() []registration.Registration {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
	return []registration.Registration{
		{ID: 1, ClubID: 3, ClubName: "Robotika", UserName: "Budi", StudentID: "2110501001",
			Kind: registration.KindMember, Status: registration.StatusAccepted, CreatedAt: day(1)},
		{ID: 2, ClubID: 3, ClubName: "Robotika", UserName: "Sari", StudentID: "2110501002",
			Kind: registration.KindMember, Status: registration.StatusPending, CreatedAt: day(2)},
		{ID: 3, ClubID: 4, ClubName: "Paduan Suara", UserName: "Andi", StudentID: "2110501003",
			Kind: registration.KindActivity, ActivityID: 9, Status: registration.StatusPending, CreatedAt: day(3)},
		{ID: 4, ClubID: 4, ClubName: "Paduan Suara", UserName: "Wati", StudentID: "2110501004",
			Kind: registration.KindMember, Status: registration.StatusRejected, CreatedAt: day(4)},
	}
}

func adminViewer() session.Session {
	return session.Session{
		User:  &session.Profile{ID: 1, Role: session.RoleAdmin},
		Token: "tok-admin",
		Role:  session.RoleAdmin,
	}
}

func adminParams(raw string) listutil.ListParams {
	q, _ := url.ParseQuery(raw)
	return listutil.ParseListParams(q, AdminRegistrationsSortColumns, AdminRegistrationsFilterKeys)
}

func TestAdminRegistrationsDefaultOrder(t *testing.T) {
	be := &fakeBackend{regs: adminTable()}
	got, err := QueryGetAdminRegistrations(context.Background(), GetAdminRegistrationsQuery{
		Session: adminViewer(), Params: adminParams(""),
	}, GetAdminRegistrationsDeps{Registrations: be})
	if err != nil {
		t.Fatalf("QueryGetAdminRegistrations: %v", err)
	}

	// Pending first, newest first within each group
	wantIDs := []int{3, 2, 4, 1}
	if len(got.Rows) != len(wantIDs) {
		t.Fatalf("Rows = %d", len(got.Rows))
	}
	for i, want := range wantIDs {
		if got.Rows[i].ID != want {
			t.Errorf("row[%d].ID = %d, want %d", i, got.Rows[i].ID, want)
		}
	}
	if got.PendingCount != 2 {
		t.Errorf("PendingCount = %d", got.PendingCount)
	}
}

func TestAdminRegistrationsFilters(t *testing.T) {
	be := &fakeBackend{regs: adminTable()}

	tests := []struct {
		name    string
		raw     string
		wantIDs []int
	}{
		{"by status", "status=pending", []int{3, 2}},
		{"by kind", "type=kegiatan", []int{3}},
		{"by club", "ukm_id=4", []int{3, 4}},
		{"search by name", "q=sari", []int{2}},
		{"search by nim", "q=2110501003", []int{3}},
		{"search by club name", "q=paduan", []int{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryGetAdminRegistrations(context.Background(), GetAdminRegistrationsQuery{
				Session: adminViewer(), Params: adminParams(tt.raw),
			}, GetAdminRegistrationsDeps{Registrations: be})
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got.Rows) != len(tt.wantIDs) {
				t.Fatalf("Rows = %+v, want ids %v", got.Rows, tt.wantIDs)
			}
			for i, want := range tt.wantIDs {
				if got.Rows[i].ID != want {
					t.Errorf("row[%d].ID = %d, want %d", i, got.Rows[i].ID, want)
				}
			}
		})
	}
}

func TestAdminRegistrationsSortAndPage(t *testing.T) {
	be := &fakeBackend{regs: adminTable()}

	got, err := QueryGetAdminRegistrations(context.Background(), GetAdminRegistrationsQuery{
		Session: adminViewer(), Params: adminParams("sort=nama&dir=asc"),
	}, GetAdminRegistrationsDeps{Registrations: be})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got.Rows[0].UserName != "Andi" || got.Rows[3].UserName != "Wati" {
		t.Errorf("sorted rows = %+v", got.Rows)
	}

	// Page size 10 with 4 rows means a single page
	if got.PageInfo.TotalPages != 1 || got.PageInfo.Total != 4 {
		t.Errorf("PageInfo = %+v", got.PageInfo)
	}
}
