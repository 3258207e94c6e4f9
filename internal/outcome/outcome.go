// Package outcome renders completed executions into canonical strings and
// collects them into deduplicating sets.
//
// The canonical string is the identity used everywhere downstream: solution
// sets dedup by it, and the store-atomicity classification is a plain
// membership check of TSO strings against the IBM370 set. That only works
// because both models share one renderer, so the format here is fixed
// byte-for-byte and must not drift.
package outcome

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alberto-ros/ConsistencyChecker/internal/litmus"
)

// Source exposes the final values of a completed execution: the shared
// memory image and the value each load observed. Implemented by
// search.State.
type Source interface {
	// Read returns the memory image value of a declared variable.
	Read(name string) int64
	// LoadValue returns the value observed by the load at (t, i).
	LoadValue(t, i int) int64
}

// Render produces the canonical outcome string for a completed execution.
//
// Format, reproduced exactly for existing consumers: for each variable in
// first-insertion order, "[name]==value; "; then for each load instruction
// in thread-then-position order, "name==value; ". Every entry, including the
// last, is followed by "; ". No trailing newline.
func Render(p *litmus.Program, src Source) string {
	var b strings.Builder
	for _, name := range p.Vars() {
		fmt.Fprintf(&b, "[%s]==%d; ", name, src.Read(name))
	}
	for t := 0; t < p.NumThreads(); t++ {
		for i, in := range p.Thread(t) {
			if in.Op == litmus.OpLoad {
				fmt.Fprintf(&b, "%s==%d; ", in.Var, src.LoadValue(t, i))
			}
		}
	}
	return b.String()
}

// Set is a deduplicating collection of canonical outcome strings.
// Insertion is idempotent; iteration via Sorted is deterministic.
type Set struct {
	members map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add inserts a canonical outcome. Returns true if it was not already
// present.
func (s *Set) Add(key string) bool {
	if _, ok := s.members[key]; ok {
		return false
	}
	s.members[key] = struct{}{}
	return true
}

// Contains reports membership.
func (s *Set) Contains(key string) bool {
	_, ok := s.members[key]
	return ok
}

// Len returns the number of distinct outcomes.
func (s *Set) Len() int { return len(s.members) }

// Sorted returns the outcomes in lexicographic order.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.members))
	for k := range s.members {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two sets hold exactly the same outcomes.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.members {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every outcome in s is also in other.
func (s *Set) SubsetOf(other *Set) bool {
	for k := range s.members {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}
