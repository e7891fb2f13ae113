package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"atlasqa/internal/report"
	"atlasqa/pkg/platform/sentinel"
)

// DefaultHistory bounds the history list, matching the Redis store.
const DefaultHistory = 200

// InMemoryStore keeps the latest report per suite and the most recent reports
// up to its history limit.
type InMemoryStore struct {
	mu      sync.RWMutex
	limit   int
	history []*report.Report
	latest  map[string]*report.Report
}

// Option configures the InMemoryStore.
type Option func(*InMemoryStore)

// WithHistory sets how many reports List can return.
func WithHistory(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.limit = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{limit: DefaultHistory, latest: make(map[string]*report.Report)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Save(_ context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, r)
	if excess := len(s.history) - s.limit; excess > 0 {
		s.history = slices.Delete(s.history, 0, excess)
	}
	s.latest[r.Suite] = r
	return nil
}

func (s *InMemoryStore) Latest(_ context.Context, suite string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.latest[suite]
	if !ok {
		return nil, fmt.Errorf("latest report for %s: %w", suite, sentinel.ErrNotFound)
	}
	return r, nil
}

// List returns reports in reverse insertion order.
func (s *InMemoryStore) List(_ context.Context, limit int) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*report.Report, 0, n)
	for i := len(s.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.history[i])
	}
	return out, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.latest = make(map[string]*report.Report)
}
