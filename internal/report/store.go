package report

import "context"

// Store persists finished reports. Latest returns sentinel.ErrNotFound when
// the suite has never been recorded. List returns newest first; a limit of
// zero or less means no limit.
type Store interface {
	Save(ctx context.Context, r *Report) error
	Latest(ctx context.Context, suite string) (*Report, error)
	List(ctx context.Context, limit int) ([]*Report, error)
}

// Publisher streams finished reports to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, r *Report) error
}
