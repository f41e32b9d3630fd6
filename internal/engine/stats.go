package engine

import "github.com/roach88/placer/internal/roster"

// Stats tracks how many people landed at each preference rank, who they
// were, and which activities were cancelled.
//
// Rank buckets move in lockstep with every assignment and release:
// bump and drop are called only from the engine's assignment primitive
// and release path, never from anywhere else. The unassigned bucket is
// filled only by the remainder pass, which is the single place that
// classifies a person as truly unplaceable.
type Stats struct {
	// Ranks counts people assigned at each preference rank. Index 0 is
	// first choice ("n1"). Best-fit placements for preference-less
	// people count in index 0 by convention.
	Ranks [roster.MaxPreferences]int

	// RankNames lists the people behind each Ranks counter, in
	// assignment order.
	RankNames [roster.MaxPreferences][]string

	// Unassigned counts people the remainder pass could not place.
	Unassigned int

	// UnassignedNames lists them, in roster order.
	UnassignedNames []string

	// Cancelled lists cancelled activity names in cancellation order.
	// Unlike the rank buckets it survives assignment resets:
	// cancellation is one-way.
	Cancelled []string

	TotalPeople     int
	TotalActivities int
}

// bump records an assignment at the given rank.
func (s *Stats) bump(name string, rank int) {
	s.Ranks[rank]++
	s.RankNames[rank] = append(s.RankNames[rank], name)
}

// drop removes a previously recorded assignment at the given rank.
func (s *Stats) drop(name string, rank int) {
	s.Ranks[rank]--
	s.RankNames[rank] = removeName(s.RankNames[rank], name)
}

// markUnassigned records a person the remainder pass could not place.
func (s *Stats) markUnassigned(name string) {
	s.Unassigned++
	s.UnassignedNames = append(s.UnassignedNames, name)
}

// resetAssigned zeroes every counter that is derived from current
// assignments. The cancellation list and totals persist: they are not
// derived state.
func (s *Stats) resetAssigned() {
	for i := range s.Ranks {
		s.Ranks[i] = 0
		s.RankNames[i] = nil
	}
	s.Unassigned = 0
	s.UnassignedNames = nil
}

// clone returns a deep copy safe for callers to hold.
func (s *Stats) clone() Stats {
	out := *s
	for i := range s.RankNames {
		out.RankNames[i] = append([]string(nil), s.RankNames[i]...)
	}
	out.UnassignedNames = append([]string(nil), s.UnassignedNames...)
	out.Cancelled = append([]string(nil), s.Cancelled...)
	return out
}
