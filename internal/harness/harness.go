// Package harness runs litmus scenarios end to end in tests: enumerate a
// program under both models, assert expected outcome sets, and snapshot the
// rendered report against golden files.
package harness

import (
	"bytes"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
	"github.com/alberto-ros/ConsistencyChecker/internal/report"
)

// Scenario is one litmus program with its expected enumeration results.
// Expectation slices left nil are not checked; ExpectViolations is checked
// whenever ExpectTSO is set (a scenario with no violations sets it empty or
// leaves it nil).
type Scenario struct {
	Name             string
	Program          *litmus.Program
	ExpectIBM370     []string // exact store-atomic outcome set
	ExpectTSO        []string // exact write-atomic outcome set
	ExpectViolations []string // exact set of TSO outcomes absent from IBM370
}

// Run enumerates the scenario's program under both models and asserts every
// expectation that is set. Returns the result for further checks.
func (s *Scenario) Run(t *testing.T) *report.Result {
	t.Helper()
	require.NotNil(t, s.Program, "scenario %s has no program", s.Name)

	res := report.Run(s.Program)

	if s.ExpectIBM370 != nil {
		assert.Equal(t, sorted(s.ExpectIBM370), res.IBM370.Sorted(),
			"scenario %s: IBM370 outcome set", s.Name)
	}
	if s.ExpectTSO != nil {
		assert.Equal(t, sorted(s.ExpectTSO), res.TSO.Sorted(),
			"scenario %s: TSO outcome set", s.Name)

		var violations []string
		if s.ExpectViolations != nil {
			violations = sorted(s.ExpectViolations)
		}
		assert.Equal(t, violations, res.Violations(),
			"scenario %s: store-atomicity violations", s.Name)
	}

	// Invariant held by construction: the write-atomic model permits every
	// store-atomic outcome.
	assert.True(t, res.IBM370.SubsetOf(res.TSO),
		"scenario %s: IBM370 set must be a subset of TSO", s.Name)

	return res
}

// RunWithGolden runs the scenario and compares the rendered text report
// against testdata/{scenario.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) {
	t.Helper()
	res := s.Run(t)

	var buf bytes.Buffer
	require.NoError(t, res.RenderText(&buf))

	g := goldie.New(t)
	g.Assert(t, s.Name, buf.Bytes())
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
