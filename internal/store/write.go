package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
	"github.com/alberto-ros/ConsistencyChecker/internal/memmodel"
	"github.com/alberto-ros/ConsistencyChecker/internal/report"
)

// Run is one persisted enumeration run.
type Run struct {
	ID        string
	CreatedAt time.Time
	Program   string // pretty-printed program listing
	Outcomes  []OutcomeRow
}

// OutcomeRow is one canonical outcome of a run under one model.
// Violation is meaningful only for TSO rows.
type OutcomeRow struct {
	Model     string
	Outcome   string
	Violation bool
}

// NewRun builds a Run from an enumeration result, stamped with a fresh
// UUIDv7 identifier (time-ordered, so run IDs sort by creation).
func NewRun(res *report.Result) Run {
	run := Run{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: time.Now().UTC(),
		Program:   litmus.Sprint(res.Program),
	}
	for _, o := range res.IBM370.Sorted() {
		run.Outcomes = append(run.Outcomes, OutcomeRow{
			Model:   memmodel.IBM370.String(),
			Outcome: o,
		})
	}
	for _, e := range res.TSOEntries() {
		run.Outcomes = append(run.Outcomes, OutcomeRow{
			Model:     memmodel.TSO.String(),
			Outcome:   e.Outcome,
			Violation: e.Violation,
		})
	}
	return run
}

// WriteRun inserts a run and its outcomes in a single transaction.
// ON CONFLICT DO NOTHING makes the write idempotent: re-inserting the same
// run ID (or the same outcome row) is silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, program)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Program,
	)
	if err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}

	for _, row := range run.Outcomes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO outcomes (run_id, model, outcome, violation)
			VALUES (?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`,
			run.ID,
			row.Model,
			row.Outcome,
			boolToInt(row.Violation),
		)
		if err != nil {
			return fmt.Errorf("write outcome for run %s: %w", run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
