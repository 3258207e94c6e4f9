package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID        string
	CreatedAt time.Time
	Outcomes  int // total outcome rows across both models
}

// ListRuns returns summaries of all stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, COUNT(o.outcome)
		FROM runs r
		LEFT JOIN outcomes o ON o.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum     RunSummary
			created string
		)
		if err := rows.Scan(&sum.ID, &created, &sum.Outcomes); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for run %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// ReadRun loads one run with all its outcome rows (ordered by model then
// outcome, so IBM370 rows come before TSO rows).
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var (
		run     Run
		created string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, program FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &created, &run.Program)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at for run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT model, outcome, violation
		FROM outcomes
		WHERE run_id = ?
		ORDER BY model, outcome
	`, id)
	if err != nil {
		return Run{}, fmt.Errorf("read outcomes for run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row       OutcomeRow
			violation int
		)
		if err := rows.Scan(&row.Model, &row.Outcome, &violation); err != nil {
			return Run{}, fmt.Errorf("scan outcome for run %s: %w", id, err)
		}
		row.Violation = violation != 0
		run.Outcomes = append(run.Outcomes, row)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("read outcomes for run %s: %w", id, err)
	}
	return run, nil
}
