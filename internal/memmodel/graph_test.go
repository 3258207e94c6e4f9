package memmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
)

// thread 0: st x,1; ld x; ld y
func graphProgram(t *testing.T) *litmus.Program {
	t.Helper()
	p, err := litmus.New([][]litmus.Instruction{
		{st("x", 1), ld("x"), ld("y")},
	})
	require.NoError(t, err)
	return p
}

func TestNewGraph_IBM370(t *testing.T) {
	g := NewGraph(graphProgram(t), IBM370)

	assert.False(t, g.Blocked(0, 0), "first instruction has no dependencies")
	assert.True(t, g.Blocked(0, 1), "load waits for the prior same-address store")
	assert.True(t, g.Blocked(0, 2), "everything after a load waits for it")
}

func TestNewGraph_TSO(t *testing.T) {
	g := NewGraph(graphProgram(t), TSO)

	assert.False(t, g.Blocked(0, 0))
	assert.False(t, g.Blocked(0, 1), "under TSO the load runs ahead of the buffered store")
	assert.True(t, g.Blocked(0, 2), "the load barrier still orders later instructions")
}

func TestGraph_SatisfyRestore(t *testing.T) {
	g := NewGraph(graphProgram(t), IBM370)

	g.Satisfy(0, 0)
	assert.False(t, g.Blocked(0, 1), "satisfying the store unblocks the load")
	assert.True(t, g.Blocked(0, 2), "the load barrier is untouched")

	g.Satisfy(0, 1)
	assert.False(t, g.Blocked(0, 2))

	// Undo in reverse order restores the original relation.
	g.Restore(0, 1)
	assert.True(t, g.Blocked(0, 2))
	g.Restore(0, 0)
	assert.True(t, g.Blocked(0, 1))
}

func TestGraph_CrossThreadUnconstrained(t *testing.T) {
	p, err := litmus.New([][]litmus.Instruction{
		{st("x", 1)},
		{ld("x")},
	})
	require.NoError(t, err)

	for _, m := range Models {
		g := NewGraph(p, m)
		assert.False(t, g.Blocked(0, 0), "%s: no cross-thread edges", m)
		assert.False(t, g.Blocked(1, 0), "%s: no cross-thread edges", m)
	}
}
