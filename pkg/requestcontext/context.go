// Package requestcontext provides HTTP-independent context accessors for
// run-scoped values.
//
// The CLI and the serve handlers set these once per run or request; suites,
// report builders and loggers read them without knowing where they came from.
//
//	ctx = requestcontext.WithRunID(ctx, runID)
//	ctx = requestcontext.WithTime(ctx, fixedTime) // tests
//	now := requestcontext.Now(ctx)
package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	runIDKey       struct{}
	suiteKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// RunID returns the run identifier, or uuid.Nil when none was set.
func RunID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(runIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithRunID injects a run identifier.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// EnsureRunID returns ctx unchanged when it already carries a run ID, and
// otherwise attaches a fresh one.
func EnsureRunID(ctx context.Context) (context.Context, uuid.UUID) {
	if id := RunID(ctx); id != uuid.Nil {
		return ctx, id
	}
	id := uuid.New()
	return WithRunID(ctx, id), id
}

// Suite returns the name of the suite being run.
func Suite(ctx context.Context) string {
	if s, ok := ctx.Value(suiteKey{}).(string); ok {
		return s
	}
	return ""
}

// WithSuite injects the suite name.
func WithSuite(ctx context.Context, suite string) context.Context {
	return context.WithValue(ctx, suiteKey{}, suite)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the run-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
