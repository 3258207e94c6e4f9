package litmus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseError reports a malformed litmus program with its source line.
type ParseError struct {
	Line    int    // 1-based line number, 0 if not line-addressable
	Message string
	Err     error // underlying error, optional
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseInstruction parses a single instruction in the line format:
//
//	st <var> <value>
//	ld <var>
//
// Variable names are NFC-normalized. Operands are whitespace separated.
func ParseInstruction(s string) (Instruction, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Instruction{}, &ParseError{Message: "empty instruction"}
	}
	switch fields[0] {
	case "st":
		if len(fields) != 3 {
			return Instruction{}, &ParseError{Message: fmt.Sprintf("st wants 2 operands, got %d", len(fields)-1)}
		}
		val, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return Instruction{}, &ParseError{Message: fmt.Sprintf("bad store value %q", fields[2]), Err: err}
		}
		return Instruction{Op: OpStore, Var: norm.NFC.String(fields[1]), Value: val}, nil
	case "ld":
		if len(fields) != 2 {
			return Instruction{}, &ParseError{Message: fmt.Sprintf("ld wants 1 operand, got %d", len(fields)-1)}
		}
		return Instruction{Op: OpLoad, Var: norm.NFC.String(fields[1])}, nil
	default:
		return Instruction{}, &ParseError{Message: fmt.Sprintf("unknown opcode %q", fields[0])}
	}
}

// Parse reads a program in the line-oriented format: one instruction per
// line, "---" ends the current thread, blank lines are ignored. A final
// thread left open at EOF is committed as if followed by "---".
//
// All errors are reported before any enumeration can run; a Parse that
// succeeds returns a Program already validated against the size bounds.
func Parse(r io.Reader) (*Program, error) {
	var (
		threads [][]Instruction
		current []Instruction
	)

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "---" {
			threads = append(threads, current)
			current = nil
			continue
		}
		in, err := ParseInstruction(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = lineno
				return nil, pe
			}
			return nil, &ParseError{Line: lineno, Message: err.Error(), Err: err}
		}
		current = append(current, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	if len(current) > 0 {
		threads = append(threads, current)
	}

	p, err := New(threads)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Err: err}
	}
	return p, nil
}
