// Package testutil provides small builders for litmus programs in tests.
package testutil

import "github.com/alberto-ros/ConsistencyChecker/internal/litmus"

// St builds a store instruction.
func St(name string, value int64) litmus.Instruction {
	return litmus.Instruction{Op: litmus.OpStore, Var: name, Value: value}
}

// Ld builds a load instruction.
func Ld(name string) litmus.Instruction {
	return litmus.Instruction{Op: litmus.OpLoad, Var: name}
}

// MustProgram builds a Program from thread instruction lists, panicking on
// validation errors. For tests that construct known-good programs inline.
func MustProgram(threads ...[]litmus.Instruction) *litmus.Program {
	p, err := litmus.New(threads)
	if err != nil {
		panic(err)
	}
	return p
}

// StoreBuffer returns the classic two-thread store-buffering litmus test:
//
//	thread 0: st x,1; ld x; ld y
//	thread 1: st y,2; st x,2
//
// Under TSO it has exactly one outcome IBM370 cannot produce.
func StoreBuffer() *litmus.Program {
	return MustProgram(
		[]litmus.Instruction{St("x", 1), Ld("x"), Ld("y")},
		[]litmus.Instruction{St("y", 2), St("x", 2)},
	)
}
