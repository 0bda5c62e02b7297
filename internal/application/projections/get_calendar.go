package projections

import (
	"context"
	"sort"
	"time"

	"siuportal/internal/domain/club"
)

// GetCalendarQuery carries query parameters. Year and Month select the
// displayed month.
type GetCalendarQuery struct {
	Year  int
	Month time.Month
}

// CalendarEntry is one dated kegiatan on the calendar.
type CalendarEntry struct {
	Day      int
	Activity club.Activity
	ClubID   int
	ClubName string
}

// GetCalendarResult carries the query result.
type GetCalendarResult struct {
	Year    int
	Month   time.Month
	Days    int
	Entries []CalendarEntry
	// ByDay indexes Entries by day of month for template rendering.
	ByDay map[int][]CalendarEntry
}

// GetCalendarDeps holds dependencies for GetCalendar.
type GetCalendarDeps struct {
	Clubs ClubReader
}

// QueryGetCalendar collects every dated activity falling in the given
// month. Undated activities never appear here.
// POST: Entries are ordered by day, then by backend ordering
func QueryGetCalendar(ctx context.Context, query GetCalendarQuery, deps GetCalendarDeps) (GetCalendarResult, error) {
	clubs, err := deps.Clubs.ListClubs(ctx)
	if err != nil {
		return GetCalendarResult{}, err
	}

	first := time.Date(query.Year, query.Month, 1, 0, 0, 0, 0, time.UTC)
	result := GetCalendarResult{
		Year:  query.Year,
		Month: query.Month,
		Days:  first.AddDate(0, 1, -1).Day(),
		ByDay: make(map[int][]CalendarEntry),
	}

	for _, c := range clubs {
		for _, a := range c.Activities {
			if a.Date.IsZero() {
				continue
			}
			if a.Date.Year() != query.Year || a.Date.Month() != query.Month {
				continue
			}
			entry := CalendarEntry{
				Day:      a.Date.Day(),
				Activity: a,
				ClubID:   c.ID,
				ClubName: c.Name,
			}
			result.Entries = append(result.Entries, entry)
		}
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Day < result.Entries[j].Day
	})
	for _, e := range result.Entries {
		result.ByDay[e.Day] = append(result.ByDay[e.Day], e)
	}

	return result, nil
}
