// Package report runs both consistency models over a program and renders the
// combined result. It is a pure consumer of the search: classification of a
// TSO outcome as a store-atomicity violation is nothing but a membership
// check of its canonical string against the IBM370 set.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
	"github.com/alberto-ros/ConsistencyChecker/internal/memmodel"
	"github.com/alberto-ros/ConsistencyChecker/internal/outcome"
	"github.com/alberto-ros/ConsistencyChecker/internal/search"
)

// Result holds the solution sets of one program under both models.
type Result struct {
	Program *litmus.Program
	IBM370  *outcome.Set
	TSO     *outcome.Set
}

// Entry is one outcome of the write-atomic listing. Violation marks an
// outcome the store-atomic model can never produce.
type Entry struct {
	Outcome   string `json:"outcome"`
	Violation bool   `json:"violates_store_atomicity"`
}

// Run enumerates prog under both models. The two searches share no state;
// each owns a fresh graph and execution state.
func Run(prog *litmus.Program) *Result {
	r := &Result{Program: prog}
	for _, m := range memmodel.Models {
		set := search.Enumerate(prog, m)
		slog.Info("model enumerated", "model", m.String(), "outcomes", set.Len())
		switch m {
		case memmodel.IBM370:
			r.IBM370 = set
		case memmodel.TSO:
			r.TSO = set
		}
	}
	return r
}

// TSOEntries returns the write-atomic outcomes in sorted order, each
// classified against the store-atomic set.
func (r *Result) TSOEntries() []Entry {
	outcomes := r.TSO.Sorted()
	entries := make([]Entry, len(outcomes))
	for i, o := range outcomes {
		entries[i] = Entry{Outcome: o, Violation: !r.IBM370.Contains(o)}
	}
	return entries
}

// Violations returns only the write-atomic outcomes absent from the
// store-atomic set, sorted.
func (r *Result) Violations() []string {
	var out []string
	for _, e := range r.TSOEntries() {
		if e.Violation {
			out = append(out, e.Outcome)
		}
	}
	return out
}

// RenderText writes the classic report: the program listing, then each
// model's solutions under its heading, violations marked with a trailing
// "*". The layout is kept exactly as existing consumers expect, including
// the blank line after every section.
func (r *Result) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "PROGRAM LOADED:"); err != nil {
		return err
	}
	if err := litmus.Fprint(w, r.Program); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, memmodel.IBM370.Heading()); err != nil {
		return err
	}
	for _, o := range r.IBM370.Sorted() {
		if _, err := fmt.Fprintln(w, o); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, memmodel.TSO.Heading()); err != nil {
		return err
	}
	for _, e := range r.TSOEntries() {
		line := e.Outcome
		if e.Violation {
			line += "*"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// jsonReport is the JSON view of a Result.
type jsonReport struct {
	Program string   `json:"program"`
	IBM370  []string `json:"ibm370"`
	TSO     []Entry  `json:"tso"`
}

// RenderJSON writes the result as a single JSON document.
func (r *Result) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Program: litmus.Sprint(r.Program),
		IBM370:  r.IBM370.Sorted(),
		TSO:     r.TSOEntries(),
	})
}
