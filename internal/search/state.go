package search

import (
	"fmt"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
)

// State is the mutable snapshot of one in-flight enumeration: which
// instructions have executed, the shared memory image, and the value each
// load observed.
//
// State is owned by exactly one enumeration and mutated in strict
// execute/undo pairs: Undo must reverse the most recent unreversed Execute
// (the state acts as an implicit stack). Callers guarantee eligibility; a
// violated contract here means the search driver is broken, so it panics
// rather than returning an error.
type State struct {
	prog     *litmus.Program
	executed [][]bool
	names    []string // memory image, first-insertion order
	values   []int64
	index    map[string]int
	loads    [][]int64
	pending  int // unexecuted instruction count
}

// NewState builds the initial state for prog: nothing executed, every
// declared variable zero, every load value zero.
func NewState(prog *litmus.Program) *State {
	s := &State{
		prog:     prog,
		executed: make([][]bool, prog.NumThreads()),
		loads:    make([][]int64, prog.NumThreads()),
		index:    make(map[string]int),
		pending:  prog.NumInstructions(),
	}
	for t := 0; t < prog.NumThreads(); t++ {
		s.executed[t] = make([]bool, prog.Len(t))
		s.loads[t] = make([]int64, prog.Len(t))
	}
	for _, name := range prog.Vars() {
		s.index[name] = len(s.names)
		s.names = append(s.names, name)
		s.values = append(s.values, 0)
	}
	return s
}

// Executed reports whether instruction (t, i) has executed.
func (s *State) Executed(t, i int) bool { return s.executed[t][i] }

// Complete reports whether every instruction across every thread has
// executed.
func (s *State) Complete() bool { return s.pending == 0 }

// Read returns the memory image value of a declared variable.
// Panics if the variable was never declared by the program.
func (s *State) Read(name string) int64 {
	pos, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("search: read of undeclared variable %q", name))
	}
	return s.values[pos]
}

// LoadValue returns the value observed by the load at (t, i).
func (s *State) LoadValue(t, i int) int64 { return s.loads[t][i] }

// Execute marks (t, i) executed and applies its effect. A store writes its
// operand into the memory image; a load records observed, the value the
// search resolved for it. Either way the previous value is returned for the
// matching Undo.
func (s *State) Execute(t, i int, observed int64) int64 {
	if s.executed[t][i] {
		panic(fmt.Sprintf("search: instruction t%d/%d executed twice", t, i))
	}
	s.executed[t][i] = true
	s.pending--

	in := s.prog.Instr(t, i)
	if in.Op == litmus.OpStore {
		return s.write(in.Var, in.Value)
	}
	prev := s.loads[t][i]
	s.loads[t][i] = observed
	return prev
}

// Undo reverses exactly one Execute of (t, i), restoring the memory value or
// recorded load value to prev and clearing the executed flag.
func (s *State) Undo(t, i int, prev int64) {
	if !s.executed[t][i] {
		panic(fmt.Sprintf("search: undo of unexecuted instruction t%d/%d", t, i))
	}
	in := s.prog.Instr(t, i)
	if in.Op == litmus.OpStore {
		s.write(in.Var, prev)
	} else {
		s.loads[t][i] = prev
	}
	s.executed[t][i] = false
	s.pending++
}

func (s *State) write(name string, value int64) int64 {
	pos, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("search: write to undeclared variable %q", name))
	}
	prev := s.values[pos]
	s.values[pos] = value
	return prev
}
