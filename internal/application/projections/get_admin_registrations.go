package projections

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"siuportal/internal/application/listutil"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// AdminRegistrationsSortColumns are the sortable columns of the admin
// table.
var AdminRegistrationsSortColumns = []string{"created_at", "nama", "ukm", "status"}

// AdminRegistrationsFilterKeys are the recognised filter parameters.
var AdminRegistrationsFilterKeys = []string{"status", "type", "ukm_id"}

// GetAdminRegistrationsQuery carries query parameters.
type GetAdminRegistrationsQuery struct {
	Session session.Session
	Params  listutil.ListParams
}

// GetAdminRegistrationsResult carries one page of the registration
// table.
type GetAdminRegistrationsResult struct {
	Rows         []registration.Registration
	PageInfo     listutil.PageInfo
	PendingCount int
}

// GetAdminRegistrationsDeps holds dependencies for
// GetAdminRegistrations.
type GetAdminRegistrationsDeps struct {
	Registrations AdminRegistrationReader
}

// QueryGetAdminRegistrations builds the admin approval table with
// search, filtering, sorting and pagination applied in memory. The
// backend returns the full set; volumes are a few hundred rows at
// most.
// PRE: query.Session is an admin session
// POST: Default ordering is pending first, then newest first
func QueryGetAdminRegistrations(ctx context.Context, query GetAdminRegistrationsQuery, deps GetAdminRegistrationsDeps) (GetAdminRegistrationsResult, error) {
	regs, err := deps.Registrations.ListRegistrations(ctx, query.Session.Token)
	if err != nil {
		return GetAdminRegistrationsResult{}, err
	}

	pending := 0
	for _, r := range regs {
		if r.Status == registration.StatusPending {
			pending++
		}
	}

	rows := filterRegistrations(regs, query.Params.FilterParams)
	sortRegistrations(rows, query.Params.SortParams)

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, len(rows))
	start, end := info.Offset(), info.EndRow()
	if start > len(rows) {
		start = len(rows)
	}
	return GetAdminRegistrationsResult{
		Rows:         rows[start:end],
		PageInfo:     info,
		PendingCount: pending,
	}, nil
}

func filterRegistrations(regs []registration.Registration, fp listutil.FilterParams) []registration.Registration {
	out := make([]registration.Registration, 0, len(regs))
	search := strings.ToLower(strings.TrimSpace(fp.Search))
	for _, r := range regs {
		if v := fp.Filters["status"]; v != "" && r.Status != v {
			continue
		}
		if v := fp.Filters["type"]; v != "" && r.Kind != v {
			continue
		}
		if v := fp.Filters["ukm_id"]; v != "" && v != strconv.Itoa(r.ClubID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.UserName), search) &&
			!strings.Contains(strings.ToLower(r.StudentID), search) &&
			!strings.Contains(strings.ToLower(r.ClubName), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortRegistrations(rows []registration.Registration, sp listutil.SortParams) {
	less := func(i, j int) bool {
		// Default: pending first, then newest first
		pi := rows[i].Status == registration.StatusPending
		pj := rows[j].Status == registration.StatusPending
		if pi != pj {
			return pi
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	}

	switch sp.Sort {
	case "created_at":
		less = func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) }
	case "nama":
		less = func(i, j int) bool { return rows[i].UserName < rows[j].UserName }
	case "ukm":
		less = func(i, j int) bool { return rows[i].ClubName < rows[j].ClubName }
	case "status":
		less = func(i, j int) bool { return rows[i].Status < rows[j].Status }
	}

	if sp.Sort != "" && sp.Dir == "desc" {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(rows, less)
}
