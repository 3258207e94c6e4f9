package litmus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Instruction
		wantErr string
	}{
		{name: "store", input: "st x 1", want: st("x", 1)},
		{name: "store negative", input: "st x -5", want: st("x", -5)},
		{name: "load", input: "ld y", want: ld("y")},
		{name: "extra whitespace", input: "  st   x   1  ", want: st("x", 1)},
		{name: "empty", input: "", wantErr: "empty instruction"},
		{name: "unknown opcode", input: "mov x 1", wantErr: `unknown opcode "mov"`},
		{name: "store missing value", input: "st x", wantErr: "st wants 2 operands"},
		{name: "store bad value", input: "st x one", wantErr: `bad store value "one"`},
		{name: "load extra operand", input: "ld x 1", wantErr: "ld wants 1 operand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstruction(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_TwoThreads(t *testing.T) {
	input := `st x 1
ld x
ld y
---
st y 2
st x 2
---
`
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, p.NumThreads())
	assert.Equal(t, []Instruction{st("x", 1), ld("x"), ld("y")}, p.Thread(0))
	assert.Equal(t, []Instruction{st("y", 2), st("x", 2)}, p.Thread(1))
	assert.Equal(t, []string{"x", "y"}, p.Vars())
}

func TestParse_ImplicitFinalSeparator(t *testing.T) {
	// A final thread left open at EOF is committed rather than dropped.
	input := "st x 1\n---\nld x"
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, p.NumThreads())
	assert.Equal(t, []Instruction{ld("x")}, p.Thread(1))
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	input := "\nst x 1\n\n---\n\n"
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, p.NumThreads())
	assert.Equal(t, 1, p.Len(0))
}

func TestParse_ErrorCarriesLine(t *testing.T) {
	input := "st x 1\n---\nbogus y\n"
	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, pe.Error(), "line 3")
}

func TestParse_BoundsViolation(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxInstructions+1; i++ {
		b.WriteString("st x 1\n")
	}
	b.WriteString("---\n")

	_, err := Parse(strings.NewReader(b.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyInstructions)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoThreads)
}

func TestParseInstruction_NormalizesVariableNames(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9.
	composed, err := ParseInstruction("ld é")
	require.NoError(t, err)
	decomposed, err := ParseInstruction("ld é")
	require.NoError(t, err)
	assert.Equal(t, composed.Var, decomposed.Var)
}
