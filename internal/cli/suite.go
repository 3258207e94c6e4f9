package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alberto-ros/ConsistencyChecker/internal/compiler"
	"github.com/alberto-ros/ConsistencyChecker/internal/report"
)

// SuiteOptions holds flags for the suite command.
type SuiteOptions struct {
	*RootOptions
}

// suiteTestResult is one test's outcome in the suite report.
type suiteTestResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// suiteReport is the suite command's payload.
type suiteReport struct {
	Suite  string            `json:"suite"`
	Passed int               `json:"passed"`
	Failed int               `json:"failed"`
	Tests  []suiteTestResult `json:"tests"`
}

func (r suiteReport) String() string {
	var b strings.Builder
	for _, t := range r.Tests {
		status := "PASS"
		if !t.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %s\n", status, t.Name)
		for _, f := range t.Failures {
			fmt.Fprintf(&b, "      %s\n", f)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed", r.Passed, r.Failed)
	return b.String()
}

// NewSuiteCommand creates the suite command.
func NewSuiteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuiteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suite <suite.cue>",
		Short: "Run a CUE litmus suite and check expected outcome sets",
		Long: `Compile a CUE litmus suite, enumerate every test under both models, and
check each test's expect block (when present) as an exact outcome set.

Exits with status 1 if any expectation fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, args[0], cmd)
		},
	}

	return cmd
}

func runSuite(opts *SuiteOptions, path string, cmd *cobra.Command) error {
	suite, err := compiler.LoadSuite(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile suite", err)
	}
	slog.Info("suite compiled", "suite", suite.Name, "tests", len(suite.Tests))

	rep := suiteReport{Suite: suite.Name}
	for _, test := range suite.Tests {
		res := report.Run(test.Program)
		tr := suiteTestResult{Name: test.Name, Passed: true}

		if test.Expect.IBM370 != nil {
			tr.Failures = append(tr.Failures,
				diffOutcomes("ibm370", test.Expect.IBM370, res.IBM370.Sorted())...)
		}
		if test.Expect.TSO != nil {
			tr.Failures = append(tr.Failures,
				diffOutcomes("tso", test.Expect.TSO, res.TSO.Sorted())...)
		}
		if len(tr.Failures) > 0 {
			tr.Passed = false
			rep.Failed++
		} else {
			rep.Passed++
		}
		rep.Tests = append(rep.Tests, tr)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if rep.Failed > 0 {
		// The report itself carries the failure details in both formats.
		if err := formatter.Error("suite failed", rep); err != nil {
			return WrapExitError(ExitCommandError, "failed to render suite report", err)
		}
		if opts.Format != "json" {
			fmt.Fprintln(cmd.OutOrStdout(), rep.String())
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d tests failed", rep.Failed, len(rep.Tests)))
	}
	if err := formatter.Success(rep); err != nil {
		return WrapExitError(ExitCommandError, "failed to render suite report", err)
	}
	return nil
}

// diffOutcomes compares an expected outcome list (order-insensitive) against
// the enumerated sorted outcomes and describes every discrepancy.
func diffOutcomes(model string, expected, got []string) []string {
	want := append([]string(nil), expected...)
	sort.Strings(want)

	wantSet := make(map[string]bool, len(want))
	for _, o := range want {
		wantSet[o] = true
	}
	gotSet := make(map[string]bool, len(got))
	for _, o := range got {
		gotSet[o] = true
	}

	var failures []string
	for _, o := range want {
		if !gotSet[o] {
			failures = append(failures, fmt.Sprintf("%s: missing outcome %q", model, o))
		}
	}
	for _, o := range got {
		if !wantSet[o] {
			failures = append(failures, fmt.Sprintf("%s: unexpected outcome %q", model, o))
		}
	}
	return failures
}
