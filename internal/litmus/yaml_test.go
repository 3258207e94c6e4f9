package litmus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	doc := `
name: store-buffer
threads:
  - [st x 1, ld y]
  - [st y 1, ld x]
`
	p, err := ParseYAML(strings.NewReader(doc))
	require.NoError(t, err)

	require.Equal(t, 2, p.NumThreads())
	assert.Equal(t, []Instruction{st("x", 1), ld("y")}, p.Thread(0))
	assert.Equal(t, []Instruction{st("y", 1), ld("x")}, p.Thread(1))
}

func TestParseYAML_BadInstruction(t *testing.T) {
	doc := `
threads:
  - [st x 1]
  - [xor y 2]
`
	_, err := ParseYAML(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thread 1 instruction 0")
	assert.Contains(t, err.Error(), `unknown opcode "xor"`)
}

func TestParseYAML_UnknownField(t *testing.T) {
	doc := `
threads:
  - [st x 1]
bogus: true
`
	_, err := ParseYAML(strings.NewReader(doc))
	require.Error(t, err)
}

func TestParseYAML_BoundsViolation(t *testing.T) {
	doc := `
threads:
  - [st a 1]
  - [st a 1]
  - [st a 1]
  - [st a 1]
  - [st a 1]
  - [st a 1]
  - [st a 1]
`
	_, err := ParseYAML(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyThreads)
}
