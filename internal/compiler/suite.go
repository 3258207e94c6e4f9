// Package compiler turns CUE litmus-suite documents into programs plus
// expected-outcome sets.
//
// A suite file declares named tests under a top-level "suite" struct:
//
//	suite: {
//		name: "classic"
//		tests: {
//			store_buffer: {
//				threads: [
//					["st x 1", "ld y"],
//					["st y 1", "ld x"],
//				]
//				expect: {
//					ibm370: ["[x]==1; [y]==1; y==0; x==1; ", ...]
//					tso:    [...]
//				}
//			}
//		}
//	}
//
// Instruction strings use the same syntax as the line-oriented loader. The
// expect block is optional per test and per model; when present it is
// checked as an exact set against the enumeration.
package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
)

// Suite is a compiled litmus suite.
type Suite struct {
	Name  string
	Tests []Test // in declaration order
}

// Test is one named litmus program with optional expected outcome sets.
type Test struct {
	Name    string
	Program *litmus.Program
	Expect  Expectations
}

// Expectations holds the optional expected canonical outcome sets per model.
// A nil slice means "not checked"; an empty slice means "expected empty".
type Expectations struct {
	IBM370 []string
	TSO    []string
}

// CompileError reports a malformed suite with its CUE source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadSuite reads and compiles a suite from a .cue file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("suite"))
	if !root.Exists() {
		return nil, &CompileError{
			Field:   "suite",
			Message: "top-level suite struct is required",
			Pos:     v.Pos(),
		}
	}
	return CompileSuite(root)
}

// CompileSuite parses a CUE value holding the suite struct.
func CompileSuite(v cue.Value) (*Suite, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	suite := &Suite{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		suite.Name = name
	}

	testsVal := v.LookupPath(cue.ParsePath("tests"))
	if !testsVal.Exists() {
		return nil, &CompileError{
			Field:   "tests",
			Message: "tests struct is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := testsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		test, err := compileTest(iter.Selector().String(), iter.Value())
		if err != nil {
			return nil, err
		}
		suite.Tests = append(suite.Tests, test)
	}
	if len(suite.Tests) == 0 {
		return nil, &CompileError{
			Field:   "tests",
			Message: "at least one test is required",
			Pos:     testsVal.Pos(),
		}
	}

	return suite, nil
}

func compileTest(name string, v cue.Value) (Test, error) {
	test := Test{Name: name}

	threadsVal := v.LookupPath(cue.ParsePath("threads"))
	if !threadsVal.Exists() {
		return Test{}, &CompileError{
			Field:   name + ".threads",
			Message: "threads list is required",
			Pos:     v.Pos(),
		}
	}

	threads, err := compileThreads(name, threadsVal)
	if err != nil {
		return Test{}, err
	}
	prog, err := litmus.New(threads)
	if err != nil {
		return Test{}, &CompileError{
			Field:   name + ".threads",
			Message: err.Error(),
			Pos:     threadsVal.Pos(),
		}
	}
	test.Program = prog

	expectVal := v.LookupPath(cue.ParsePath("expect"))
	if expectVal.Exists() {
		test.Expect, err = compileExpect(name, expectVal)
		if err != nil {
			return Test{}, err
		}
	}

	return test, nil
}

func compileThreads(name string, v cue.Value) ([][]litmus.Instruction, error) {
	var threads [][]litmus.Instruction

	tIter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for t := 0; tIter.Next(); t++ {
		iIter, err := tIter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var instrs []litmus.Instruction
		for i := 0; iIter.Next(); i++ {
			line, err := iIter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			in, err := litmus.ParseInstruction(line)
			if err != nil {
				return nil, &CompileError{
					Field:   fmt.Sprintf("%s.threads[%d][%d]", name, t, i),
					Message: err.Error(),
					Pos:     iIter.Value().Pos(),
				}
			}
			instrs = append(instrs, in)
		}
		threads = append(threads, instrs)
	}
	return threads, nil
}

func compileExpect(name string, v cue.Value) (Expectations, error) {
	var exp Expectations
	var err error

	if ibm := v.LookupPath(cue.ParsePath("ibm370")); ibm.Exists() {
		exp.IBM370, err = stringList(ibm)
		if err != nil {
			return Expectations{}, &CompileError{
				Field:   name + ".expect.ibm370",
				Message: err.Error(),
				Pos:     ibm.Pos(),
			}
		}
	}
	if tso := v.LookupPath(cue.ParsePath("tso")); tso.Exists() {
		exp.TSO, err = stringList(tso)
		if err != nil {
			return Expectations{}, &CompileError{
				Field:   name + ".expect.tso",
				Message: err.Error(),
				Pos:     tso.Pos(),
			}
		}
	}
	return exp, nil
}

func stringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	out := []string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return firstErr
}
