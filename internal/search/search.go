// Package search implements the exhaustive interleaving enumeration at the
// heart of the checker: a recursive backtracking walk over every execution
// order a consistency model permits, producing the set of distinct final
// outcomes.
//
// The search is single-threaded cooperative recursion. All mutable state
// (dependency graph, execution state) belongs to one in-flight enumeration
// and is mutated in strict execute/undo pairs, so every exit path restores
// the exact prior state before the enclosing call returns. Recursion depth
// is bounded by the total instruction count.
package search

import (
	"log/slog"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
	"github.com/alberto-ros/ConsistencyChecker/internal/memmodel"
	"github.com/alberto-ros/ConsistencyChecker/internal/outcome"
)

// Enumerate explores every execution of prog that model permits and returns
// the deduplicated set of canonical outcomes.
//
// Each call owns a fresh dependency graph and execution state; nothing
// survives between calls except the returned set, so enumerating both models
// back to back shares no state. Enumerate is deterministic: the same program
// always yields the same set.
func Enumerate(prog *litmus.Program, model memmodel.Model) *outcome.Set {
	e := &enumerator{
		prog:      prog,
		model:     model,
		graph:     memmodel.NewGraph(prog, model),
		state:     NewState(prog),
		solutions: outcome.NewSet(),
	}
	e.walk()
	slog.Debug("enumeration finished",
		"model", model.String(),
		"outcomes", e.solutions.Len(),
	)
	return e.solutions
}

type enumerator struct {
	prog      *litmus.Program
	model     memmodel.Model
	graph     *memmodel.Graph
	state     *State
	solutions *outcome.Set
}

// walk tries every eligible instruction (unexecuted, no unsatisfied
// dependency) as the next step of the current partial order. Iteration is
// thread-major then position-major; the order affects only which duplicate
// of an outcome is found first, never the resulting set.
func (e *enumerator) walk() {
	for t := 0; t < e.prog.NumThreads(); t++ {
		for i := 0; i < e.prog.Len(t); i++ {
			if e.state.Executed(t, i) || e.graph.Blocked(t, i) {
				continue
			}
			e.step(t, i)
		}
	}
}

// step executes (t, i) under each of its resolutions, recursing or recording
// a completed outcome, then undoes everything. The satisfy/restore pair on
// the graph brackets all resolutions of this instruction; the execute/undo
// pair on the state brackets each one.
func (e *enumerator) step(t, i int) {
	e.graph.Satisfy(t, i)
	for _, observed := range e.resolutions(t, i) {
		prev := e.state.Execute(t, i, observed)
		if e.state.Complete() {
			e.solutions.Add(outcome.Render(e.prog, e.state))
		} else {
			e.walk()
		}
		e.state.Undo(t, i, prev)
	}
	e.graph.Restore(t, i)
}

// resolutions returns the candidate values instruction (t, i) may take as
// its effect: the written value for a store, the observed value(s) for a
// load. Modeling this as an enumerated list keeps the load-resolution fork
// structurally identical to the eligible-instruction loop.
//
// Under IBM370 a load always reads the current memory image. Under TSO, if
// an earlier same-thread store to the same variable exists and none of those
// stores has executed yet, the load runs ahead of its thread's own buffered
// write and must observe it: the most recent prior store's value is
// forwarded. Once any prior same-address store has executed, the buffered
// write is globally visible and the load reads memory like everyone else.
func (e *enumerator) resolutions(t, i int) []int64 {
	in := e.prog.Instr(t, i)
	if in.Op == litmus.OpStore {
		return []int64{in.Value}
	}
	if e.model == memmodel.TSO {
		if fwd, ok := e.bufferedStore(t, i, in.Var); ok {
			return []int64{fwd}
		}
	}
	return []int64{e.state.Read(in.Var)}
}

// bufferedStore scans thread t's instructions before position i for stores
// to name. It reports the most recent such store's value and whether
// forwarding applies: at least one prior same-address store exists and none
// of them has executed.
func (e *enumerator) bufferedStore(t, i int, name string) (int64, bool) {
	found := false
	var value int64
	for p := i - 1; p >= 0; p-- {
		in := e.prog.Instr(t, p)
		if in.Op != litmus.OpStore || in.Var != name {
			continue
		}
		if e.state.Executed(t, p) {
			return 0, false
		}
		if !found {
			found = true
			value = in.Value
		}
	}
	return value, found
}
