// Package publisher streams finished reports to Kafka with franz-go. Each
// report is one JSON record keyed by suite so consumers see a suite's runs in
// order.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"atlasqa/internal/platform/config"
	"atlasqa/internal/platform/logger"
	"atlasqa/internal/report"
)

// Producer is the slice of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher implements report.Publisher.
type Publisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	close    func()
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = l
	}
}

// NewWithProducer wraps an existing producer.
func NewWithProducer(producer Producer, topic string, opts ...Option) *Publisher {
	p := &Publisher{producer: producer, topic: topic, logger: logger.Discard(), close: func() {}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// New connects to the configured brokers and makes sure the topic exists.
// Returns nil, nil if no brokers are configured (streaming disabled).
func New(ctx context.Context, cfg config.KafkaConfig, opts ...Option) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := EnsureTopic(ctx, kadm.NewClient(client), cfg.Topic); err != nil {
		client.Close()
		return nil, err
	}

	p := NewWithProducer(client, cfg.Topic, opts...)
	p.close = client.Close
	return p, nil
}

// EnsureTopic creates topic with one partition if it does not exist yet.
func EnsureTopic(ctx context.Context, admin *kadm.Client, topic string) error {
	resp, err := admin.CreateTopic(ctx, 1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}

// Message is the record value consumers decode.
type Message struct {
	RunID    string           `json:"run_id"`
	Suite    string           `json:"suite"`
	Failed   bool             `json:"failed"`
	Fixture  bool             `json:"fixture"`
	Findings []report.Finding `json:"findings"`
	Report   *report.Report   `json:"report"`
}

// Publish produces the report synchronously.
func (p *Publisher) Publish(ctx context.Context, r *report.Report) error {
	value, err := json.Marshal(Message{
		RunID:    r.RunID.String(),
		Suite:    r.Suite,
		Failed:   r.Failed(),
		Fixture:  r.Fixture,
		Findings: r.Findings,
		Report:   r,
	})
	if err != nil {
		return fmt.Errorf("marshal report message: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(r.Suite),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "run_id", Value: []byte(r.RunID.String())},
		},
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce report %s: %w", r.Suite, err)
	}
	p.logger.DebugContext(ctx, "published report",
		"suite", r.Suite,
		"run_id", r.RunID,
		"topic", p.topic,
		"findings", len(r.Findings),
	)
	return nil
}

// Close flushes and closes the underlying client.
func (p *Publisher) Close() {
	p.close()
}
