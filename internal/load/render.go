package load

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render prints the summary as console tables.
func (s *Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s (%s, %d iterations)", s.Scenario, s.Elapsed.Round(1e6), s.Iterations))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{{Name: "Value", Align: text.AlignRight}})
	t.AppendRows([]table.Row{
		{"requests", s.Requests},
		{"failed", s.Failures},
		{"retryable", s.Retryable},
		{"failure rate", fmt.Sprintf("%.2f%%", s.FailureRate*100)},
		{"p50", s.P50.Round(1e5)},
		{"p95", s.P95.Round(1e5)},
		{"max", s.Max.Round(1e5)},
	})
	t.SetStyle(table.StyleLight)
	t.Render()

	if len(s.Checks) > 0 {
		c := table.NewWriter()
		c.SetOutputMirror(w)
		c.AppendHeader(table.Row{"Check", "Passes", "Fails"})
		for _, cc := range s.Checks {
			c.AppendRow(table.Row{cc.Name, cc.Passes, cc.Fails})
		}
		c.SetStyle(table.StyleLight)
		c.Render()
	}

	if len(s.Thresholds) > 0 {
		th := table.NewWriter()
		th.SetOutputMirror(w)
		th.AppendHeader(table.Row{"Threshold", "Value", "Result"})
		for _, r := range s.Thresholds {
			result := "pass"
			if !r.Passed {
				result = "FAIL"
			}
			th.AppendRow(table.Row{r.Name, fmt.Sprintf("%.3f", r.Value), result})
		}
		th.SetStyle(table.StyleLight)
		th.Render()
	}
}
