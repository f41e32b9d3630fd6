package harness

import (
	"fmt"
	"slices"
	"sort"

	"github.com/roach88/placer/internal/engine"
)

// AssertionError describes one failed expectation with enough context
// to debug the mismatch.
type AssertionError struct {
	Clause   string // Expectation clause for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("expectation failed: %s\n  Expected: %s\n  Actual: %s",
		e.Clause, e.Expected, e.Actual)
}

// Evaluate checks the settled result against the scenario's
// expectations and returns every failure. An empty slice means the
// scenario passed.
func Evaluate(result *engine.Result, expect Expectation) []error {
	var failures []error

	if expect.Summary != nil {
		failures = append(failures, evaluateSummary(result, *expect.Summary)...)
	}

	if expect.Cancelled != nil {
		if !slices.Equal(result.CancelledActivities, expect.Cancelled) {
			failures = append(failures, &AssertionError{
				Clause:   "cancelled",
				Expected: fmt.Sprintf("%v", expect.Cancelled),
				Actual:   fmt.Sprintf("%v", result.CancelledActivities),
			})
		}
	}

	if expect.Assignments != nil {
		// Evaluate activities in sorted order so failure output is
		// stable across runs.
		names := make([]string, 0, len(expect.Assignments))
		for name := range expect.Assignments {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			want := expect.Assignments[name]
			got := result.Assignments[name]
			if !slices.Equal(got, want) {
				failures = append(failures, &AssertionError{
					Clause:   fmt.Sprintf("assignments[%s]", name),
					Expected: fmt.Sprintf("%v", want),
					Actual:   fmt.Sprintf("%v", got),
				})
			}
		}
	}

	if expect.Unassigned != nil {
		got := result.Statistics.DetailedAssignments.Unassigned
		if !slices.Equal(got, expect.Unassigned) {
			failures = append(failures, &AssertionError{
				Clause:   "unassigned",
				Expected: fmt.Sprintf("%v", expect.Unassigned),
				Actual:   fmt.Sprintf("%v", got),
			})
		}
	}

	return failures
}

func evaluateSummary(result *engine.Result, want SummaryExpect) []error {
	got := result.Statistics.Summary

	counters := []struct {
		name string
		want int
		got  int
	}{
		{"n1", want.N1, got.N1},
		{"n2", want.N2, got.N2},
		{"n3", want.N3, got.N3},
		{"n4", want.N4, got.N4},
		{"unassigned", want.Unassigned, got.Unassigned},
	}

	var failures []error
	for _, c := range counters {
		if c.got != c.want {
			failures = append(failures, &AssertionError{
				Clause:   fmt.Sprintf("summary.%s", c.name),
				Expected: fmt.Sprintf("%d", c.want),
				Actual:   fmt.Sprintf("%d", c.got),
			})
		}
	}
	return failures
}
