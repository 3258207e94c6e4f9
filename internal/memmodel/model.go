// Package memmodel encodes the two supported memory-consistency models and
// the per-thread dependency relation each one induces over a litmus program.
//
// The relation only ever relates instructions within one thread: cross-thread
// ordering is exactly what the interleaving search explores, so the graph
// never constrains it.
package memmodel

import (
	"fmt"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
)

// Model selects a memory-consistency model.
type Model int

const (
	// IBM370 is the store-atomic model: every store becomes visible to all
	// threads at a single global instant, and a load may not run ahead of a
	// prior same-address store.
	IBM370 Model = iota + 1
	// TSO is the write-atomic store-buffering model: a later load may run
	// ahead of an earlier store (the store sits in the thread's buffer), and
	// such a load observes the buffered value.
	TSO
)

// Models lists the supported models in reporting order.
var Models = []Model{IBM370, TSO}

// String returns the reporting name of the model.
func (m Model) String() string {
	switch m {
	case IBM370:
		return "IBM370"
	case TSO:
		return "TSO"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Heading returns the solution-listing heading for the model.
func (m Model) Heading() string {
	switch m {
	case IBM370:
		return "IBM370 (STORE-ATOMIC) POSSIBLE SOLUTIONS:"
	case TSO:
		return "TSO (WRITE-ATOMIC) POSSIBLE SOLUTIONS (* breaks store atomicity):"
	default:
		return m.String()
	}
}

// DependsOn reports whether later (at a higher position in the same thread)
// must wait for earlier under model m.
//
// Both models order a thread's stores totally and treat a load as a barrier:
// nothing after a load in program order may execute before it. They differ
// on store-to-load: under IBM370 a load also waits for any prior store to the
// same variable; under TSO it does not, which is what lets a load run ahead
// of the thread's own buffered store.
func (m Model) DependsOn(earlier, later litmus.Instruction) bool {
	if earlier.Op == litmus.OpLoad {
		return true
	}
	// earlier is a store
	if later.Op == litmus.OpStore {
		return true
	}
	return m == IBM370 && earlier.Var == later.Var
}
