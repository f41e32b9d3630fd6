package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/placer/internal/roster"
)

func act(name string, min, max int) *roster.Activity {
	return &roster.Activity{Name: name, Min: min, Max: max}
}

func person(name string, prefs ...string) *roster.Person {
	return &roster.Person{Name: name, Preferences: prefs}
}

func newEngine(t *testing.T, people []*roster.Person, activities []*roster.Activity) *Engine {
	t.Helper()
	e, err := New(people, activities)
	require.NoError(t, err)
	return e
}

// assertConsistent verifies the central invariant: a person appears in
// an activity's member list iff their placement names that activity,
// and in exactly one list. Statistics buckets must agree with the
// placements they were derived from.
func assertConsistent(t *testing.T, e *Engine) {
	t.Helper()

	seen := make(map[string]string) // person -> activity
	for _, a := range e.activities {
		for _, name := range e.members[a.Name] {
			prev, dup := seen[name]
			require.False(t, dup, "person %s in both %s and %s", name, prev, a.Name)
			seen[name] = a.Name

			p := e.personByName(name)
			require.True(t, p.Placement.Assigned(), "member %s of %s has no placement", name, a.Name)
			require.Equal(t, a.Name, p.Placement.Activity)
		}
	}

	var ranks [roster.MaxPreferences]int
	for _, p := range e.people {
		if p.Placement.Assigned() {
			require.Equal(t, p.Placement.Activity, seen[p.Name],
				"person %s placed in %s but missing from member list", p.Name, p.Placement.Activity)
			ranks[p.Placement.Rank]++
		} else {
			_, inList := seen[p.Name]
			require.False(t, inList, "unplaced person %s still in a member list", p.Name)
		}
	}
	assert.Equal(t, ranks, e.stats.Ranks, "rank counters disagree with placements")
}

func TestAssign_PreferredWithOverflow(t *testing.T) {
	// 2 of 3 people get A (capacity 2), the third falls through to B
	// at their second choice.
	people := []*roster.Person{
		person("ana", "A", "B"),
		person("ben", "A", "B"),
		person("cleo", "A", "B"),
	}
	activities := []*roster.Activity{act("A", 2, 2), act("B", 1, 5)}

	e := newEngine(t, people, activities)
	result := e.Assign()

	assert.Equal(t, 2, result.Statistics.Summary.N1)
	assert.Equal(t, 1, result.Statistics.Summary.N2)
	assert.Equal(t, 0, result.Statistics.Summary.N3)
	assert.Equal(t, 0, result.Statistics.Summary.N4)
	assert.Equal(t, 0, result.Statistics.Summary.Unassigned)
	assert.Empty(t, result.CancelledActivities)

	assert.Equal(t, []string{"ana", "ben"}, result.Assignments["A"])
	assert.Equal(t, []string{"cleo"}, result.Assignments["B"])
	assertConsistent(t, e)
}

func TestAssign_UnviableActivityCancelled(t *testing.T) {
	// Only 2 people for a min-3 activity and nowhere else to go: the
	// activity is cancelled and both end up unassigned.
	people := []*roster.Person{
		person("ana", "X"),
		person("ben", "X"),
	}
	activities := []*roster.Activity{act("X", 3, 5)}

	e := newEngine(t, people, activities)
	result := e.Assign()

	assert.Equal(t, []string{"X"}, result.CancelledActivities)
	assert.Equal(t, 2, result.Statistics.Summary.Unassigned)
	assert.Equal(t, []string{"ana", "ben"}, result.Statistics.DetailedAssignments.Unassigned)
	assert.Equal(t, 0, result.Statistics.Summary.N1)
	assert.Empty(t, result.Assignments)
	assert.True(t, result.ActivityDetails["X"].IsCancelled)
	assert.Equal(t, 0, result.ActivityDetails["X"].TotalAssigned)
	assertConsistent(t, e)
}

func TestAssign_RescueAvertsCancellation(t *testing.T) {
	// X is under-filled at 1 member; Y holds a surplus member who also
	// lists X. The rescue keeps X open: without it, X would be
	// cancelled and ana released.
	people := []*roster.Person{
		person("ana", "X"),
		person("ben", "Y"),
		person("cleo", "Y"),
		person("dara", "Y", "X"),
	}
	activities := []*roster.Activity{act("X", 2, 3), act("Y", 1, 5)}

	e := newEngine(t, people, activities)
	result := e.Assign()

	assert.Empty(t, result.CancelledActivities)
	assert.False(t, result.ActivityDetails["X"].IsCancelled)
	assert.Contains(t, result.Assignments["X"], "ana")
	assert.Equal(t, 0, result.Statistics.Summary.Unassigned)

	// Y stays viable throughout.
	assert.GreaterOrEqual(t, result.ActivityDetails["Y"].TotalAssigned, 1)
	assertConsistent(t, e)
}

func TestAssign_NoPeople(t *testing.T) {
	e := newEngine(t, nil, []*roster.Activity{act("A", 2, 4)})
	result := e.Assign()

	assert.Equal(t, 0, result.Statistics.Summary.TotalPeople)
	assert.Equal(t, 1, result.Statistics.Summary.TotalActivities)
	assert.Empty(t, result.Assignments)
	// An activity that never had members is not cancelled.
	assert.Empty(t, result.CancelledActivities)
}

func TestAssign_NoActivities(t *testing.T) {
	// Only preference-less people can exist without a catalog; any
	// preference would fail validation as an unknown activity.
	people := []*roster.Person{person("ana"), person("ben")}
	e := newEngine(t, people, nil)
	result := e.Assign()

	assert.Equal(t, 2, result.Statistics.Summary.Unassigned)
	assert.Equal(t, []string{"ana", "ben"}, result.Statistics.DetailedAssignments.Unassigned)
}

func TestAssign_BestFitCountsAsFirstChoice(t *testing.T) {
	// A preference-less person lands via best-fit and reports n1 in
	// the summary. Internally the placement is tagged ByBestFit.
	people := []*roster.Person{
		person("ana", "A"),
		person("drift"),
	}
	activities := []*roster.Activity{act("A", 1, 5)}

	e := newEngine(t, people, activities)
	result := e.Assign()

	assert.Equal(t, 2, result.Statistics.Summary.N1)
	assert.Equal(t, 0, result.Statistics.Summary.Unassigned)

	drift := e.personByName("drift")
	assert.Equal(t, roster.ByBestFit, drift.Placement.Kind)
	assert.Equal(t, roster.ByPreference, e.personByName("ana").Placement.Kind)
	assertConsistent(t, e)
}

func TestOptimize_Idempotent(t *testing.T) {
	people := []*roster.Person{
		person("ana", "A", "B"),
		person("ben", "A"),
		person("cleo", "B", "A"),
		person("drift"),
	}
	activities := []*roster.Activity{act("A", 1, 2), act("B", 1, 2)}

	e := newEngine(t, people, activities)
	result := e.Assign()

	statsBefore := e.Stats()
	membersA := e.Members("A")
	membersB := e.Members("B")

	e.Optimize()

	assert.Equal(t, statsBefore, e.Stats())
	assert.Equal(t, membersA, e.Members("A"))
	assert.Equal(t, membersB, e.Members("B"))
	assert.Equal(t, result.Statistics.Summary.N1, e.Stats().Ranks[0])
	assertConsistent(t, e)
}

func TestAssign_CancelledActivityAcceptsNoAssignments(t *testing.T) {
	people := []*roster.Person{
		person("ana", "X", "Y"),
		person("ben", "X", "Y"),
	}
	activities := []*roster.Activity{act("X", 3, 5), act("Y", 1, 5)}

	e := newEngine(t, people, activities)
	result := e.Assign()

	// X could not reach its minimum of 3; both people fall back to Y.
	assert.Equal(t, []string{"X"}, result.CancelledActivities)
	assert.Equal(t, []string{"ana", "ben"}, result.Assignments["Y"])
	assert.Equal(t, 2, result.Statistics.Summary.N2)

	// Once cancelled, X rejects assignments outright.
	assert.False(t, e.hasSpace("X"))
	assert.False(t, e.assignTo(e.personByName("ana"), roster.Place("X", 0)))
	assertConsistent(t, e)
}

func TestNew_InputErrors(t *testing.T) {
	tests := []struct {
		name       string
		people     []*roster.Person
		activities []*roster.Activity
		code       InputErrorCode
	}{
		{
			name:       "duplicate person",
			people:     []*roster.Person{person("ana"), person("ana")},
			activities: []*roster.Activity{act("A", 1, 2)},
			code:       ErrCodeDuplicatePerson,
		},
		{
			name:       "duplicate activity",
			people:     nil,
			activities: []*roster.Activity{act("A", 1, 2), act("A", 1, 2)},
			code:       ErrCodeDuplicateActivity,
		},
		{
			name:       "unknown preference",
			people:     []*roster.Person{person("ana", "ghost")},
			activities: []*roster.Activity{act("A", 1, 2)},
			code:       ErrCodeUnknownActivity,
		},
		{
			name:       "min above max",
			people:     nil,
			activities: []*roster.Activity{act("A", 3, 2)},
			code:       ErrCodeInvalidCapacity,
		},
		{
			name:       "zero capacity",
			people:     nil,
			activities: []*roster.Activity{act("A", 0, 0)},
			code:       ErrCodeInvalidCapacity,
		},
		{
			name:       "too many preferences",
			people:     []*roster.Person{person("ana", "A", "A", "A", "A", "A")},
			activities: []*roster.Activity{act("A", 1, 2)},
			code:       ErrCodeTooManyPreferences,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.people, tt.activities)
			require.Error(t, err)
			require.True(t, IsInputError(err))

			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.code, ie.Code)
		})
	}
}
