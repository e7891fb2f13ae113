// Package redis caches the latest report per suite and a bounded run history
// in Redis so a serve instance can answer without a database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"atlasqa/internal/report"
	"atlasqa/pkg/platform/sentinel"
)

const (
	keyPrefix  = "atlasqa:report:"
	historyKey = keyPrefix + "history"

	// DefaultHistory bounds the history list.
	DefaultHistory = 200
)

// Store implements report.Store on a go-redis client.
type Store struct {
	client  redis.UniversalClient
	history int64
	ttl     time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithHistory sets how many reports the history list keeps.
func WithHistory(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.history = int64(n)
		}
	}
}

// WithTTL expires the per-suite latest keys. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New creates a Redis-backed report store.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, history: DefaultHistory}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func latestKey(suite string) string {
	return keyPrefix + "latest:" + suite
}

// Save writes the latest key and pushes onto the history list in one
// transaction.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, latestKey(r.Suite), payload, s.ttl)
		pipe.LPush(ctx, historyKey, payload)
		pipe.LTrim(ctx, historyKey, 0, s.history-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.Suite, err)
	}
	return nil
}

func (s *Store) Latest(ctx context.Context, suite string) (*report.Report, error) {
	payload, err := s.client.Get(ctx, latestKey(suite)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("latest report for %s: %w", suite, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get latest report: %w", err)
	}
	return decode(payload)
}

func (s *Store) List(ctx context.Context, limit int) ([]*report.Report, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	payloads, err := s.client.LRange(ctx, historyKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	out := make([]*report.Report, 0, len(payloads))
	for _, p := range payloads {
		r, err := decode([]byte(p))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func decode(payload []byte) (*report.Report, error) {
	var r report.Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
