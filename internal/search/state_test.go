package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
	"github.com/alberto-ros/ConsistencyChecker/internal/testutil"
)

func TestState_InitialZero(t *testing.T) {
	s := NewState(testutil.StoreBuffer())

	assert.False(t, s.Complete())
	assert.Equal(t, int64(0), s.Read("x"))
	assert.Equal(t, int64(0), s.Read("y"))
	assert.Equal(t, int64(0), s.LoadValue(0, 1))
}

func TestState_ExecuteUndoStore(t *testing.T) {
	s := NewState(testutil.StoreBuffer())

	prev := s.Execute(0, 0, 0) // st x,1
	assert.Equal(t, int64(0), prev)
	assert.Equal(t, int64(1), s.Read("x"))
	assert.True(t, s.Executed(0, 0))

	s.Undo(0, 0, prev)
	assert.Equal(t, int64(0), s.Read("x"))
	assert.False(t, s.Executed(0, 0))
}

func TestState_ExecuteUndoLoad(t *testing.T) {
	s := NewState(testutil.StoreBuffer())

	prev := s.Execute(0, 1, 7) // ld x observes 7
	assert.Equal(t, int64(0), prev)
	assert.Equal(t, int64(7), s.LoadValue(0, 1))

	s.Undo(0, 1, prev)
	assert.Equal(t, int64(0), s.LoadValue(0, 1))
}

func TestState_Complete(t *testing.T) {
	prog := testutil.MustProgram(
		[]litmus.Instruction{testutil.St("x", 1), testutil.Ld("x")},
	)
	s := NewState(prog)

	p0 := s.Execute(0, 0, 0)
	assert.False(t, s.Complete())
	p1 := s.Execute(0, 1, 1)
	assert.True(t, s.Complete())

	s.Undo(0, 1, p1)
	s.Undo(0, 0, p0)
	assert.False(t, s.Complete())
}

func TestState_ContractViolationsPanic(t *testing.T) {
	t.Run("double execute", func(t *testing.T) {
		s := NewState(testutil.StoreBuffer())
		s.Execute(0, 0, 0)
		require.Panics(t, func() { s.Execute(0, 0, 0) })
	})

	t.Run("undo of unexecuted", func(t *testing.T) {
		s := NewState(testutil.StoreBuffer())
		require.Panics(t, func() { s.Undo(0, 0, 0) })
	})

	t.Run("read of undeclared variable", func(t *testing.T) {
		s := NewState(testutil.StoreBuffer())
		require.Panics(t, func() { s.Read("zz") })
	})
}
