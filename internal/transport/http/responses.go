package httptransport

import (
	"time"

	"github.com/google/uuid"

	"atlasqa/internal/report"
)

// ReadyResponse is the /readyz body.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ReportSummary is one row of GET /reports.
type ReportSummary struct {
	RunID      uuid.UUID `json:"run_id"`
	Suite      string    `json:"suite"`
	Status     string    `json:"status"`
	Failed     bool      `json:"failed"`
	Fixture    bool      `json:"fixture"`
	Passed     int       `json:"checks_passed"`
	FailedN    int       `json:"checks_failed"`
	Findings   int       `json:"findings"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ListResponse is the GET /reports body.
type ListResponse struct {
	Reports []ReportSummary `json:"reports"`
	Count   int             `json:"count"`
}

// FromReports summarises stored reports, keeping their order.
func FromReports(reports []*report.Report) ListResponse {
	out := ListResponse{Reports: make([]ReportSummary, 0, len(reports))}
	for _, r := range reports {
		passed, failed := r.Counts()
		out.Reports = append(out.Reports, ReportSummary{
			RunID:      r.RunID,
			Suite:      r.Suite,
			Status:     r.Status(),
			Failed:     r.Failed(),
			Fixture:    r.Fixture,
			Passed:     passed,
			FailedN:    failed,
			Findings:   len(r.Findings),
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
		})
	}
	out.Count = len(out.Reports)
	return out
}
