package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlasqa/internal/platform/metrics"
	"atlasqa/internal/report"
	"atlasqa/internal/report/store/memory"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, *report.Report) error {
	f.calls++
	return errors.New("broker down")
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	store := memory.NewInMemoryStore()
	pub := &failingPublisher{}

	rec := report.NewRecorder(
		report.WithStore(store),
		report.WithStore(nil),
		report.WithPublisher(pub),
		report.WithMetrics(m),
	)

	r := report.New(ctx, "count", false)
	r.Gate("officially assigned count is close to 195", false)
	r.Document("API returned non-empty response", true)
	r.AddFinding(report.Finding{Kind: report.KindRequirementsDefect, Title: "ambiguous"})
	r.Finish(ctx)

	failures := rec.Record(ctx, r)

	t.Run("publisher failure is counted but the store still saves", func(t *testing.T) {
		assert.Equal(t, 1, failures)
		assert.Equal(t, 1, pub.calls)
		got, err := store.Latest(ctx, "count")
		require.NoError(t, err)
		assert.Equal(t, r.RunID, got.RunID)
	})

	t.Run("the report itself is untouched", func(t *testing.T) {
		assert.False(t, r.Failed())
	})

	t.Run("checks and findings are counted", func(t *testing.T) {
		assert.Equal(t, 1.0, promtest.ToFloat64(m.ChecksTotal.WithLabelValues("count", "document", "fail")))
		assert.Equal(t, 1.0, promtest.ToFloat64(m.ChecksTotal.WithLabelValues("count", "document", "pass")))
		assert.Equal(t, 1.0, promtest.ToFloat64(m.FindingsTotal.WithLabelValues("count", "requirements-defect")))
	})
}
