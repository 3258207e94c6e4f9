package litmus

import (
	"errors"
	"fmt"
)

// Bounds on litmus program size. These are validation limits, not storage
// sizes: a Program holds exactly the instructions it was given.
const (
	MaxThreads      = 6
	MaxInstructions = 10
)

// Validation errors returned by New.
var (
	ErrNoThreads           = errors.New("program has no threads")
	ErrTooManyThreads      = fmt.Errorf("program exceeds %d threads", MaxThreads)
	ErrTooManyInstructions = fmt.Errorf("thread exceeds %d instructions", MaxInstructions)
	ErrEmptyVariable       = errors.New("instruction has empty variable name")
)

// Op distinguishes instruction kinds.
type Op int

const (
	// OpStore writes an immediate value to a variable.
	OpStore Op = iota + 1
	// OpLoad reads a variable; the observed value is fixed by the search.
	OpLoad
)

// String returns the mnemonic used by the input format.
func (o Op) String() string {
	switch o {
	case OpStore:
		return "st"
	case OpLoad:
		return "ld"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Instruction is a single load or store. Value is meaningful only for stores.
// Instructions are identified by their (thread, position) coordinates within
// a Program; the struct itself carries no identity.
type Instruction struct {
	Op    Op
	Var   string
	Value int64
}

// String renders the instruction the way the pretty printer does.
func (in Instruction) String() string {
	if in.Op == OpStore {
		return fmt.Sprintf("st %s, %d", in.Var, in.Value)
	}
	return fmt.Sprintf("ld %s", in.Var)
}

// Program is an immutable multi-threaded straight-line program.
//
// Program order (the per-thread instruction sequence) is significant and
// never reordered; only cross-thread execution order is explored by the
// search. The variable list records first insertion order across the whole
// program (threads in index order, positions in program order), which is the
// order memory variables render in canonical outcomes.
type Program struct {
	threads [][]Instruction
	vars    []string
}

// New validates the given threads and builds a Program.
//
// Enforced here, before any enumeration can start: at least one thread, at
// most MaxThreads threads, at most MaxInstructions instructions per thread,
// and non-empty variable names. The instruction slices are copied; callers
// may reuse theirs.
func New(threads [][]Instruction) (*Program, error) {
	if len(threads) == 0 {
		return nil, ErrNoThreads
	}
	if len(threads) > MaxThreads {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyThreads, len(threads))
	}

	p := &Program{threads: make([][]Instruction, len(threads))}
	seen := make(map[string]bool)
	for t, instrs := range threads {
		if len(instrs) > MaxInstructions {
			return nil, fmt.Errorf("%w: thread %d has %d", ErrTooManyInstructions, t, len(instrs))
		}
		p.threads[t] = make([]Instruction, len(instrs))
		copy(p.threads[t], instrs)
		for i, in := range instrs {
			if in.Var == "" {
				return nil, fmt.Errorf("%w: thread %d instruction %d", ErrEmptyVariable, t, i)
			}
			if !seen[in.Var] {
				seen[in.Var] = true
				p.vars = append(p.vars, in.Var)
			}
		}
	}
	return p, nil
}

// NumThreads returns the thread count.
func (p *Program) NumThreads() int { return len(p.threads) }

// Len returns the instruction count of thread t.
func (p *Program) Len(t int) int { return len(p.threads[t]) }

// Instr returns the instruction at (t, i).
func (p *Program) Instr(t, i int) Instruction { return p.threads[t][i] }

// Thread returns thread t's instruction sequence. The returned slice must
// not be modified.
func (p *Program) Thread(t int) []Instruction { return p.threads[t] }

// Vars returns the program's variables in first-insertion order. The
// returned slice must not be modified.
func (p *Program) Vars() []string { return p.vars }

// MaxLen returns the length of the longest thread. Used by the pretty
// printer for its row count.
func (p *Program) MaxLen() int {
	max := 0
	for _, instrs := range p.threads {
		if len(instrs) > max {
			max = len(instrs)
		}
	}
	return max
}

// NumInstructions returns the total instruction count across all threads.
func (p *Program) NumInstructions() int {
	n := 0
	for _, instrs := range p.threads {
		n += len(instrs)
	}
	return n
}
