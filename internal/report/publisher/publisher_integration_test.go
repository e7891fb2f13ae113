//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"atlasqa/internal/platform/config"
	"atlasqa/internal/report"
	"atlasqa/pkg/testutil/containers"
)

func TestPublishToRedpanda(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.KafkaConfig{Brokers: []string{rp.Broker}, Topic: "qa.findings"}
	p, err := New(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, p)
	defer p.Close()

	r := report.New(ctx, "count", false)
	r.AddFinding(report.Finding{Kind: report.KindRequirementsDefect, Title: "Country count requirement is ambiguous"})
	require.NoError(t, p.Publish(ctx, r))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())

	var got []Message
	fetches.EachRecord(func(rec *kgo.Record) {
		var msg Message
		require.NoError(t, json.Unmarshal(rec.Value, &msg))
		got = append(got, msg)
	})
	require.Len(t, got, 1)
	assert.Equal(t, r.RunID.String(), got[0].RunID)
	assert.Equal(t, "count", got[0].Suite)
}
