package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alberto-ros/ConsistencyChecker/internal/report"
	"github.com/alberto-ros/ConsistencyChecker/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestNewRun(t *testing.T) {
	res := report.Run(testutil.StoreBuffer())
	run := NewRun(res)

	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
	assert.Contains(t, run.Program, "st x, 1")
	// 4 IBM370 outcomes + 5 TSO outcomes
	assert.Len(t, run.Outcomes, 9)

	violations := 0
	for _, row := range run.Outcomes {
		if row.Violation {
			violations++
			assert.Equal(t, "TSO", row.Model)
		}
	}
	assert.Equal(t, 1, violations)
}

func TestWriteRun_ReadRunRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun(report.Run(testutil.StoreBuffer()))
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Program, got.Program)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Millisecond)
	// Rows come back ordered by model then outcome; NewRun already emits
	// them in that order (IBM370 sorts before TSO).
	assert.Equal(t, run.Outcomes, got.Outcomes)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun(report.Run(testutil.StoreBuffer()))
	require.NoError(t, s.WriteRun(ctx, run))
	require.NoError(t, s.WriteRun(ctx, run), "re-writing the same run is a no-op")

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, got.Outcomes, len(run.Outcomes))
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := NewRun(report.Run(testutil.StoreBuffer()))
	require.NoError(t, s.WriteRun(ctx, first))
	second := NewRun(report.Run(testutil.StoreBuffer()))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, s.WriteRun(ctx, second))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 9, runs[0].Outcomes)
}

func TestReadRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
