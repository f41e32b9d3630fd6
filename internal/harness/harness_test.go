package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios and
// evaluates its declared expectations against the settled result.
func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(scenario)
			require.NoError(t, err)

			for _, failure := range Evaluate(result, scenario.Expect) {
				t.Error(failure)
			}
		})
	}
}

func TestRun_InvalidRoster(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown_preference",
		Description: "a preference naming no catalog activity fails construction",
		Activities: []ActivityInput{
			{Name: "chess", Min: 1, Max: 4},
		},
		People: []PersonInput{
			{Name: "ana", Preferences: []string{"ghost"}},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_preference")
}

func TestEvaluate_ReportsMismatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "deliberately wrong expectations",
		Activities: []ActivityInput{
			{Name: "chess", Min: 1, Max: 4},
		},
		People: []PersonInput{
			{Name: "ana", Preferences: []string{"chess"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	failures := Evaluate(result, Expectation{
		Summary:     &SummaryExpect{N1: 5},
		Cancelled:   []string{"chess"},
		Assignments: map[string][]string{"chess": {"ben"}},
		Unassigned:  []string{"ana"},
	})
	require.Len(t, failures, 4)

	var ae *AssertionError
	require.ErrorAs(t, failures[0], &ae)
	assert.Equal(t, "summary.n1", ae.Clause)
	assert.Equal(t, "5", ae.Expected)
	assert.Equal(t, "1", ae.Actual)
}

func TestEvaluate_PassingExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "pass",
		Description: "everything lands at first choice",
		Activities: []ActivityInput{
			{Name: "chess", Min: 1, Max: 4},
		},
		People: []PersonInput{
			{Name: "ana", Preferences: []string{"chess"}},
			{Name: "ben", Preferences: []string{"chess"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	failures := Evaluate(result, Expectation{
		Summary:     &SummaryExpect{N1: 2},
		Cancelled:   []string{},
		Assignments: map[string][]string{"chess": {"ana", "ben"}},
		Unassigned:  []string{},
	})
	assert.Empty(t, failures)
}

func TestRun_NormalizesNames(t *testing.T) {
	// The scenario spells the name with a combining acute accent; the
	// harness normalizes to the precomposed form, same as the CLI
	// loader.
	scenario := &Scenario{
		Name:        "nfc",
		Description: "decomposed and precomposed spellings are one person",
		Activities: []ActivityInput{
			{Name: "chess", Min: 1, Max: 4},
		},
		People: []PersonInput{
			{Name: "Jose\u0301", Preferences: []string{"chess"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jos\u00e9"}, result.Assignments["chess"])
}
