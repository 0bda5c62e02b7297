package projections

import (
	"context"

	"siuportal/internal/domain/report"
)

// GetReportSummaryQuery carries query parameters. A zero ClubID means
// every club.
type GetReportSummaryQuery struct {
	ClubID int
}

// ClubReport is one club's accountability section.
type ClubReport struct {
	ClubID   int
	ClubName string
	Entries  []report.Entry
	Totals   report.Totals
}

// GetReportSummaryResult carries the query result.
type GetReportSummaryResult struct {
	Reports []ClubReport
	Grand   report.Totals
}

// GetReportSummaryDeps holds dependencies for GetReportSummary.
type GetReportSummaryDeps struct {
	Clubs ClubReader
}

// QueryGetReportSummary builds the public accountability page, one
// section per club plus a grand total. Clubs with no reports are
// skipped.
func QueryGetReportSummary(ctx context.Context, query GetReportSummaryQuery, deps GetReportSummaryDeps) (GetReportSummaryResult, error) {
	clubs, err := deps.Clubs.ListClubs(ctx)
	if err != nil {
		return GetReportSummaryResult{}, err
	}

	var result GetReportSummaryResult
	for _, c := range clubs {
		if query.ClubID != 0 && c.ID != query.ClubID {
			continue
		}
		if len(c.Reports) == 0 {
			continue
		}
		totals := report.Summarize(c.Reports)
		result.Reports = append(result.Reports, ClubReport{
			ClubID:   c.ID,
			ClubName: c.Name,
			Entries:  c.Reports,
			Totals:   totals,
		})
		result.Grand.Entries += totals.Entries
		result.Grand.Participants += totals.Participants
		result.Grand.Cost += totals.Cost
	}

	return result, nil
}
