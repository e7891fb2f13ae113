package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render writes the report as console tables: checks first, then findings.
func Render(w io.Writer, r *Report) {
	title := fmt.Sprintf("%s: %s (%s)", r.Suite, r.Status(), formatDuration(r.Duration()))
	if r.Fixture {
		title += " [fixture data]"
	}

	checks := table.NewWriter()
	checks.SetOutputMirror(w)
	checks.SetTitle(title)
	checks.AppendHeader(table.Row{"Check", "Mode", "Result"})
	checks.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Check", WidthMax: 70, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Result", Align: text.AlignCenter},
	})
	for _, c := range r.Checks {
		checks.AppendRow(table.Row{c.Name, string(c.Mode), resultString(c.Passed)})
	}
	passed, failed := r.Counts()
	checks.AppendFooter(table.Row{"Total", "", fmt.Sprintf("%d passed / %d failed", passed, failed)})
	checks.SetStyle(table.StyleLight)
	checks.Render()

	if len(r.Findings) > 0 {
		findings := table.NewWriter()
		findings.SetOutputMirror(w)
		findings.SetTitle("Findings")
		findings.AppendHeader(table.Row{"Kind", "Title", "Expected", "Actual"})
		findings.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Title", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
			{Name: "Expected", WidthMax: 30, WidthMaxEnforcer: text.WrapSoft},
			{Name: "Actual", WidthMax: 30, WidthMaxEnforcer: text.WrapSoft},
		})
		for _, f := range r.Findings {
			findings.AppendRow(table.Row{string(f.Kind), f.Title, f.Expected, f.Actual})
		}
		findings.SetStyle(table.StyleLight)
		findings.Render()

		for _, f := range r.Findings {
			if len(f.Recommendations) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s:\n", f.Title)
			for _, rec := range f.Recommendations {
				fmt.Fprintf(w, "  - %s\n", rec)
			}
		}
	}

	for _, n := range r.Notes {
		fmt.Fprintf(w, "note: %s\n", n)
	}
}

// RenderSummary writes one row per report, as printed at the end of `run all`.
func RenderSummary(w io.Writer, reports []*Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Suite summary")
	t.AppendHeader(table.Row{"Suite", "Checks", "Failed", "Findings", "Duration", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Checks", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Findings", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})
	for _, r := range reports {
		passed, failed := r.Counts()
		t.AppendRow(table.Row{r.Suite, passed + failed, failed, len(r.Findings), formatDuration(r.Duration()), r.Status()})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func resultString(passed bool) string {
	if passed {
		return "pass"
	}
	return "FAIL"
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
