// Package postgres keeps the full run history in Postgres: one row per report
// with its JSON payload plus one row per finding for querying.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"atlasqa/internal/report"
	"atlasqa/pkg/platform/sentinel"
	txcontext "atlasqa/pkg/platform/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS qa_reports (
	run_id      UUID        NOT NULL,
	suite       TEXT        NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	failed      BOOLEAN     NOT NULL,
	fixture     BOOLEAN     NOT NULL,
	payload     JSONB       NOT NULL,
	PRIMARY KEY (run_id, suite)
);
CREATE INDEX IF NOT EXISTS qa_reports_suite_finished_idx ON qa_reports (suite, finished_at DESC);
CREATE TABLE IF NOT EXISTS qa_findings (
	run_id   UUID NOT NULL,
	suite    TEXT NOT NULL,
	position INT  NOT NULL,
	kind     TEXT NOT NULL,
	title    TEXT NOT NULL,
	expected TEXT NOT NULL DEFAULT '',
	actual   TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, suite, position),
	FOREIGN KEY (run_id, suite) REFERENCES qa_reports (run_id, suite) ON DELETE CASCADE
);
`

// Store implements report.Store on database/sql with lib/pq.
type Store struct {
	db *sql.DB
}

// New creates a Postgres-backed report store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate report schema: %w", err)
	}
	return nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Save upserts the report and replaces its findings in one transaction.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	finishedAt := r.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = r.StartedAt
	}

	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		_, err := s.execer(ctx).ExecContext(ctx, `
			INSERT INTO qa_reports (run_id, suite, started_at, finished_at, failed, fixture, payload)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (run_id, suite) DO UPDATE SET
				started_at = EXCLUDED.started_at,
				finished_at = EXCLUDED.finished_at,
				failed = EXCLUDED.failed,
				fixture = EXCLUDED.fixture,
				payload = EXCLUDED.payload
		`, r.RunID, r.Suite, r.StartedAt, finishedAt, r.Failed(), r.Fixture, string(payload))
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		if _, err := s.execer(ctx).ExecContext(ctx,
			`DELETE FROM qa_findings WHERE run_id = $1 AND suite = $2`, r.RunID, r.Suite); err != nil {
			return fmt.Errorf("clear findings: %w", err)
		}
		for i, f := range r.Findings {
			_, err := s.execer(ctx).ExecContext(ctx, `
				INSERT INTO qa_findings (run_id, suite, position, kind, title, expected, actual)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, r.RunID, r.Suite, i, string(f.Kind), f.Title, f.Expected, f.Actual)
			if err != nil {
				return fmt.Errorf("insert finding: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) Latest(ctx context.Context, suite string) (*report.Report, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM qa_reports
		WHERE suite = $1
		ORDER BY finished_at DESC
		LIMIT 1
	`, suite).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest report for %s: %w", suite, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query latest report: %w", err)
	}
	return decode(payload)
}

func (s *Store) List(ctx context.Context, limit int) ([]*report.Report, error) {
	query := `SELECT payload FROM qa_reports ORDER BY finished_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []*report.Report
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r, err := decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// CountFindings returns how many findings of kind were recorded for suite
// across all runs.
func (s *Store) CountFindings(ctx context.Context, suite string, kind report.FindingKind) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM qa_findings WHERE suite = $1 AND kind = $2`, suite, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count findings: %w", err)
	}
	return n, nil
}

func decode(payload []byte) (*report.Report, error) {
	var r report.Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
