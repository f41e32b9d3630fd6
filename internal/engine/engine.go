package engine

import (
	"github.com/roach88/placer/internal/roster"
)

// Engine owns the person roster, the activity catalog, and the current
// assignment map, and drives the greedy-with-feedback matching
// algorithm. Create one with New and call Assign exactly once; the
// engine is not safe for concurrent use and is not meant to be reused
// across runs.
type Engine struct {
	people     []*roster.Person   // input order
	activities []*roster.Activity // catalog order
	byName     map[string]*roster.Activity
	peopleIdx  map[string]*roster.Person

	// members maps activity name to assigned person names in insertion
	// order. Membership must always agree with each person's Placement;
	// assignTo and release are the only writers.
	members map[string][]string

	stats Stats
}

// New validates the roster and catalog and builds an engine over them.
//
// The slices are retained and their elements mutated during Assign;
// callers that need the originals untouched must pass copies.
//
// Returns an *InputError for duplicate names, preferences referencing
// unknown activities, preference lists longer than four entries, or
// capacity bounds with min > max or max < 1.
func New(people []*roster.Person, activities []*roster.Activity) (*Engine, error) {
	e := &Engine{
		people:     people,
		activities: activities,
		byName:     make(map[string]*roster.Activity, len(activities)),
		peopleIdx:  make(map[string]*roster.Person, len(people)),
		members:    make(map[string][]string, len(activities)),
	}

	for _, a := range activities {
		if _, dup := e.byName[a.Name]; dup {
			return nil, newInputError(ErrCodeDuplicateActivity, a.Name, "activity name appears twice in catalog")
		}
		if a.Max < 1 {
			return nil, newInputError(ErrCodeInvalidCapacity, a.Name, "max_participants must be at least 1, got %d", a.Max)
		}
		if a.Min > a.Max {
			return nil, newInputError(ErrCodeInvalidCapacity, a.Name, "min_participants %d exceeds max_participants %d", a.Min, a.Max)
		}
		e.byName[a.Name] = a
		e.members[a.Name] = nil
	}

	for _, p := range people {
		if _, dup := e.peopleIdx[p.Name]; dup {
			return nil, newInputError(ErrCodeDuplicatePerson, p.Name, "person name appears twice in roster")
		}
		e.peopleIdx[p.Name] = p

		if len(p.Preferences) > roster.MaxPreferences {
			return nil, newInputError(ErrCodeTooManyPreferences, p.Name,
				"preference list has %d entries, engine tracks at most %d", len(p.Preferences), roster.MaxPreferences)
		}
		for _, pref := range p.Preferences {
			if _, ok := e.byName[pref]; !ok {
				return nil, newInputError(ErrCodeUnknownActivity, p.Name, "preference %q is not in the catalog", pref)
			}
		}
	}

	e.stats.TotalPeople = len(people)
	e.stats.TotalActivities = len(activities)
	return e, nil
}

// hasSpace reports whether the activity exists, is open, and holds
// fewer members than its maximum. Unknown names return false rather
// than failing: callers probe freely.
func (e *Engine) hasSpace(activity string) bool {
	a, ok := e.byName[activity]
	if !ok || a.Cancelled {
		return false
	}
	return len(e.members[activity]) < a.Max
}

// assignTo moves a person into the activity the placement names,
// releasing any current assignment first. The member list, the person
// record, and the statistics change together; callers never observe
// the person double-counted or missing.
//
// Returns false without side effects when the target has no space.
// That is a business outcome, not an error.
func (e *Engine) assignTo(p *roster.Person, placement roster.Placement) bool {
	if !e.hasSpace(placement.Activity) {
		return false
	}

	if p.Placement.Assigned() {
		e.release(p)
	}

	e.members[placement.Activity] = append(e.members[placement.Activity], p.Name)
	p.Placement = placement
	e.stats.bump(p.Name, placement.Rank)
	return true
}

// release clears a person's current assignment: removes them from the
// member list, decrements their rank bucket, and resets the placement.
// No-op for unplaced people.
func (e *Engine) release(p *roster.Person) {
	if !p.Placement.Assigned() {
		return
	}
	e.members[p.Placement.Activity] = removeName(e.members[p.Placement.Activity], p.Name)
	e.stats.drop(p.Name, p.Placement.Rank)
	p.Placement = roster.Placement{}
}

// bestAvailable picks an activity for a person with no preferences.
//
// Primary criterion: among open activities with space that are still
// below their minimum, the smallest gap to minimum wins; ties go to the
// first encountered in catalog order (order-dependent, not a stable
// tie-break by name). If no below-minimum activity qualifies, the first
// open activity with space wins instead.
func (e *Engine) bestAvailable() (string, bool) {
	var best *roster.Activity
	bestBelowMin := false
	smallestGap := 0

	for _, a := range e.activities {
		if a.Cancelled || !e.hasSpace(a.Name) {
			continue
		}
		count := len(e.members[a.Name])
		if count < a.Min {
			gap := a.Min - count
			if !bestBelowMin || gap < smallestGap {
				best = a
				bestBelowMin = true
				smallestGap = gap
			}
		} else if best == nil {
			best = a
		}
	}

	if best == nil {
		return "", false
	}
	return best.Name, true
}

// nextAvailablePreference returns the first preference (in rank order)
// with space, or ok=false when every listed activity is full or
// cancelled.
func (e *Engine) nextAvailablePreference(p *roster.Person) (activity string, rank int, ok bool) {
	for i, name := range p.Preferences {
		if e.hasSpace(name) {
			return name, i, true
		}
	}
	return "", 0, false
}

// Members returns the assigned person names for an activity in
// insertion order. The returned slice is a copy.
func (e *Engine) Members(activity string) []string {
	names := e.members[activity]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Stats returns a copy of the current statistics.
func (e *Engine) Stats() Stats {
	return e.stats.clone()
}

// removeName removes the first occurrence of name, preserving the
// order of the remaining entries. Order preservation matters: rescue
// and cancellation scan member lists in insertion order.
func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
