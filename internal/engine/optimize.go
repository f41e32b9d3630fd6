package engine

import (
	"slices"

	"github.com/roach88/placer/internal/roster"
)

// Optimize rebuilds every assignment from scratch, rank by rank.
//
// The pass clears all current assignments and the derived statistics,
// then for each preference rank 0..3 in increasing order:
//  1. groups still-unassigned people who have a preference at this
//     rank into buckets keyed by the activity they name, skipping
//     cancelled activities
//  2. within each bucket, sorts candidates ascending by remaining
//     preference count — people with fewer fallback options go first
//  3. admits candidates from the front up to the activity's remaining
//     capacity; the rest wait for later ranks or the remainder pass
//
// Buckets are processed in first-named order and the sort is stable,
// keeping the pass deterministic. Anyone left over is handed to the
// remainder pass, which is the only place that marks people
// unassigned.
//
// Optimize is idempotent for a settled roster: it is the normalization
// step used both for initial placement and after every cancellation or
// rescue.
func (e *Engine) Optimize() {
	e.clearAssignments()

	for rank := 0; rank < roster.MaxPreferences; rank++ {
		// Bucket unassigned people by the activity they name at this
		// rank. bucketOrder pins first-named order; a Go map range
		// here would make admission order depend on hashing.
		buckets := make(map[string][]*roster.Person)
		var bucketOrder []string
		for _, p := range e.people {
			if p.Placement.Assigned() || len(p.Preferences) <= rank {
				continue
			}
			name := p.Preferences[rank]
			if e.byName[name].Cancelled {
				continue
			}
			if _, seen := buckets[name]; !seen {
				bucketOrder = append(bucketOrder, name)
			}
			buckets[name] = append(buckets[name], p)
		}

		for _, name := range bucketOrder {
			candidates := buckets[name]

			// Scarcity-aware tie-break: fewer remaining fallbacks
			// first. Stable, so roster order breaks remaining ties.
			slices.SortStableFunc(candidates, func(a, b *roster.Person) int {
				return (len(a.Preferences) - rank) - (len(b.Preferences) - rank)
			})

			free := e.byName[name].Max - len(e.members[name])
			if free > len(candidates) {
				free = len(candidates)
			}
			for _, p := range candidates[:free] {
				e.assignTo(p, roster.Place(name, rank))
			}
		}
	}

	e.assignRemaining()
}

// clearAssignments releases every person and resets the derived
// statistics. The cancellation list survives.
func (e *Engine) clearAssignments() {
	for _, p := range e.people {
		e.release(p)
	}
	e.stats.resetAssigned()
}

// assignRemaining is the remainder pass: every person with no current
// assignment gets their first preference with space (in rank order),
// or a best-fit activity if they listed none. Anyone who still cannot
// be placed is marked unassigned — this is the only path that
// increments the unassigned counter.
func (e *Engine) assignRemaining() {
	for _, p := range e.people {
		if p.Placement.Assigned() {
			continue
		}
		if len(p.Preferences) > 0 {
			if name, rank, ok := e.nextAvailablePreference(p); ok {
				e.assignTo(p, roster.Place(name, rank))
				continue
			}
		} else if name, ok := e.bestAvailable(); ok {
			e.assignTo(p, roster.PlaceBestFit(name))
			continue
		}
		e.stats.markUnassigned(p.Name)
	}
}

// reassignFromCancelled redistributes people released by a
// cancellation: next available preference in rank order, or best-fit
// for the preference-less. Unlike the remainder pass it never marks
// anyone unassigned — the final optimization pass classifies whoever
// is still unplaceable.
func (e *Engine) reassignFromCancelled() {
	for _, p := range e.people {
		if p.Placement.Assigned() {
			continue
		}
		if len(p.Preferences) > 0 {
			if name, rank, ok := e.nextAvailablePreference(p); ok {
				e.assignTo(p, roster.Place(name, rank))
			}
		} else if name, ok := e.bestAvailable(); ok {
			e.assignTo(p, roster.PlaceBestFit(name))
		}
	}
}
