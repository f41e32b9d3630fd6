package engine

// Result is the final assignment document. Its JSON shape is part of
// the external contract and is consumed verbatim by the CLI, the run
// store, and the golden tests.
type Result struct {
	Statistics          Statistics                 `json:"statistics"`
	Assignments         map[string][]string        `json:"assignments"`
	CancelledActivities []string                   `json:"cancelled_activities"`
	ActivityDetails     map[string]ActivityDetail  `json:"activity_details"`
}

// Statistics groups the summary counters and the per-rank name lists.
type Statistics struct {
	Summary             Summary             `json:"summary"`
	DetailedAssignments DetailedAssignments `json:"detailed_assignments"`
}

// Summary holds the headline counters: people per preference rank,
// people left unassigned, and totals. N1 includes best-fit placements
// for preference-less people — a long-standing reporting convention.
type Summary struct {
	N1              int `json:"n1"`
	N2              int `json:"n2"`
	N3              int `json:"n3"`
	N4              int `json:"n4"`
	Unassigned      int `json:"unassigned"`
	TotalPeople     int `json:"total_people"`
	TotalActivities int `json:"total_activities"`
}

// DetailedAssignments lists the people behind each summary counter,
// for auditability.
type DetailedAssignments struct {
	GotN1      []string `json:"got_n1"`
	GotN2      []string `json:"got_n2"`
	GotN3      []string `json:"got_n3"`
	GotN4      []string `json:"got_n4"`
	Unassigned []string `json:"unassigned"`
}

// ActivityDetail summarizes one activity's final state. Every activity
// appears here, including cancelled and empty ones.
type ActivityDetail struct {
	TotalAssigned int  `json:"total_assigned"`
	MinRequired   int  `json:"min_required"`
	MaxAllowed    int  `json:"max_allowed"`
	IsCancelled   bool `json:"is_cancelled"`
}

// result builds the result document from the engine's settled state.
// Only non-empty activities appear under assignments; activity_details
// covers the whole catalog.
func (e *Engine) result() *Result {
	r := &Result{
		Statistics: Statistics{
			Summary: Summary{
				N1:              e.stats.Ranks[0],
				N2:              e.stats.Ranks[1],
				N3:              e.stats.Ranks[2],
				N4:              e.stats.Ranks[3],
				Unassigned:      e.stats.Unassigned,
				TotalPeople:     e.stats.TotalPeople,
				TotalActivities: e.stats.TotalActivities,
			},
			DetailedAssignments: DetailedAssignments{
				GotN1:      emptyNotNil(e.stats.RankNames[0]),
				GotN2:      emptyNotNil(e.stats.RankNames[1]),
				GotN3:      emptyNotNil(e.stats.RankNames[2]),
				GotN4:      emptyNotNil(e.stats.RankNames[3]),
				Unassigned: emptyNotNil(e.stats.UnassignedNames),
			},
		},
		Assignments:         make(map[string][]string),
		CancelledActivities: emptyNotNil(e.stats.Cancelled),
		ActivityDetails:     make(map[string]ActivityDetail, len(e.activities)),
	}

	for _, a := range e.activities {
		if names := e.members[a.Name]; len(names) > 0 {
			r.Assignments[a.Name] = append([]string(nil), names...)
		}
		r.ActivityDetails[a.Name] = ActivityDetail{
			TotalAssigned: len(e.members[a.Name]),
			MinRequired:   a.Min,
			MaxAllowed:    a.Max,
			IsCancelled:   a.Cancelled,
		}
	}

	return r
}

// emptyNotNil copies a name list, mapping nil to an empty slice so the
// JSON contract always shows arrays, never null.
func emptyNotNil(names []string) []string {
	out := make([]string, 0, len(names))
	return append(out, names...)
}
