package memmodel

import "github.com/alberto-ros/ConsistencyChecker/internal/litmus"

// Graph is the per-thread dependency relation of a program under one model.
//
// deps[t][later][earlier] records that thread t's instruction at position
// later must wait for the one at position earlier. Edges are derived only
// from earlier→later positions, so the relation is acyclic by construction.
//
// The graph is mutated in Satisfy/Restore pairs by the search: executing an
// instruction clears its outgoing edges (its successors stop waiting for it),
// and undoing it recomputes them from the model rule. Restore recomputes
// rather than saves, which is exact because the rule is a pure function of
// the immutable program.
type Graph struct {
	model Model
	prog  *litmus.Program
	deps  [][][]bool
}

// NewGraph builds the full dependency relation for prog under model.
func NewGraph(prog *litmus.Program, model Model) *Graph {
	g := &Graph{
		model: model,
		prog:  prog,
		deps:  make([][][]bool, prog.NumThreads()),
	}
	for t := 0; t < prog.NumThreads(); t++ {
		n := prog.Len(t)
		g.deps[t] = make([][]bool, n)
		for i := 0; i < n; i++ {
			g.deps[t][i] = make([]bool, n)
		}
	}
	for t := 0; t < prog.NumThreads(); t++ {
		for i := 0; i < prog.Len(t); i++ {
			g.Restore(t, i)
		}
	}
	return g
}

// Model returns the model this graph was built for.
func (g *Graph) Model() Model { return g.model }

// Blocked reports whether instruction (t, i) still waits on an unsatisfied
// dependency. An unexecuted, unblocked instruction is eligible to execute.
func (g *Graph) Blocked(t, i int) bool {
	for _, dep := range g.deps[t][i] {
		if dep {
			return true
		}
	}
	return false
}

// Satisfy clears the edges instruction (t, i) satisfies for its successors.
// Called when (t, i) executes.
func (g *Graph) Satisfy(t, i int) {
	for d := i + 1; d < g.prog.Len(t); d++ {
		g.deps[t][d][i] = false
	}
}

// Restore recomputes the edges from instruction (t, i) to its successors
// from the model rule. Called when (t, i) is undone; also used during
// initial construction.
func (g *Graph) Restore(t, i int) {
	earlier := g.prog.Instr(t, i)
	for d := i + 1; d < g.prog.Len(t); d++ {
		g.deps[t][d][i] = g.model.DependsOn(earlier, g.prog.Instr(t, d))
	}
}
