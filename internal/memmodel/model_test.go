package memmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
)

func st(name string, value int64) litmus.Instruction {
	return litmus.Instruction{Op: litmus.OpStore, Var: name, Value: value}
}

func ld(name string) litmus.Instruction {
	return litmus.Instruction{Op: litmus.OpLoad, Var: name}
}

func TestModel_String(t *testing.T) {
	assert.Equal(t, "IBM370", IBM370.String())
	assert.Equal(t, "TSO", TSO.String())
}

func TestDependsOn(t *testing.T) {
	tests := []struct {
		name    string
		earlier litmus.Instruction
		later   litmus.Instruction
		ibm     bool
		tso     bool
	}{
		{
			name:    "store then store same var",
			earlier: st("x", 1), later: st("x", 2),
			ibm: true, tso: true,
		},
		{
			name:    "store then store different var",
			earlier: st("x", 1), later: st("y", 2),
			ibm: true, tso: true,
		},
		{
			name:    "store then load same var",
			earlier: st("x", 1), later: ld("x"),
			ibm: true, tso: false, // store buffering: the load may run ahead
		},
		{
			name:    "store then load different var",
			earlier: st("x", 1), later: ld("y"),
			ibm: false, tso: false,
		},
		{
			name:    "load then load",
			earlier: ld("x"), later: ld("y"),
			ibm: true, tso: true, // a load is a barrier in both models
		},
		{
			name:    "load then store",
			earlier: ld("x"), later: st("y", 1),
			ibm: true, tso: true,
		},
		{
			name:    "load then load same var",
			earlier: ld("x"), later: ld("x"),
			ibm: true, tso: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ibm, IBM370.DependsOn(tt.earlier, tt.later), "IBM370")
			assert.Equal(t, tt.tso, TSO.DependsOn(tt.earlier, tt.later), "TSO")
		})
	}
}
