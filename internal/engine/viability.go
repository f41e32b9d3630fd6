package engine

import (
	"log/slog"

	"github.com/roach88/placer/internal/roster"
)

// Assign runs the full assignment algorithm to its fixed point and
// returns the result document.
//
// Seed, optimize, then loop: rescue borderline activities, cancel
// whatever is still below minimum, redistribute the released people,
// and go again while anything changed. A final optimization pass
// normalizes assignments and statistics to the settled catalog.
//
// Call exactly once per engine. Deterministic: identical input
// produces an identical result.
func (e *Engine) Assign() *Result {
	e.seed()
	e.Optimize()

	for changed := true; changed; {
		changed = false

		// Activities with members but below minimum are cancellation
		// candidates; try to close their deficit first.
		var borderline []string
		for _, a := range e.activities {
			if a.Cancelled {
				continue
			}
			if n := len(e.members[a.Name]); n > 0 && n < a.Min {
				borderline = append(borderline, a.Name)
			}
		}
		for _, name := range borderline {
			if e.tryPreventCancellation(name) {
				slog.Debug("rescued activity", "activity", name)
				changed = true
			}
		}

		if newly := e.checkAndCancelActivities(); len(newly) > 0 {
			slog.Debug("cancelled activities", "activities", newly)
			changed = true
			e.reassignFromCancelled()
		}
	}

	e.Optimize()
	return e.result()
}

// seed gives every person an initial assignment attempt: first
// preference if they listed any (and it has space), best-fit
// otherwise. People the seed cannot place are picked up by the
// optimization pass.
func (e *Engine) seed() {
	for _, p := range e.people {
		if len(p.Preferences) > 0 {
			e.assignTo(p, roster.Place(p.Preferences[0], 0))
		} else if name, ok := e.bestAvailable(); ok {
			e.assignTo(p, roster.PlaceBestFit(name))
		}
	}
}

// tryPreventCancellation tries to close a below-minimum activity's
// deficit by poaching members from other open activities that sit
// strictly above their own minimum and whose members list the target
// among their preferences. Poached members move at their true
// preference rank for the target.
//
// Returns true the moment the deficit reaches zero. A false return
// does not undo partial progress: this is a side-effecting probe, not
// a transaction. The donor's surplus is checked once per activity, so
// a rescue can pull a donor below its own minimum — the next loop pass
// deals with that.
func (e *Engine) tryPreventCancellation(activity string) bool {
	target := e.byName[activity]
	needed := target.Min - len(e.members[activity])

	for _, donor := range e.activities {
		if donor.Name == activity || donor.Cancelled {
			continue
		}
		if len(e.members[donor.Name]) <= donor.Min {
			continue
		}
		// Snapshot: assignTo splices the donor's member list while we
		// scan it.
		for _, name := range e.Members(donor.Name) {
			p := e.personByName(name)
			rank := p.Prefers(activity)
			if rank < 0 {
				continue
			}
			if e.assignTo(p, roster.Place(activity, rank)) {
				needed--
				if needed == 0 {
					return true
				}
			}
		}
	}

	return false
}

// checkAndCancelActivities cancels every open activity whose member
// count is nonzero but below minimum, releasing its members back to
// unassigned. Cancellation is permanent. An activity with zero members
// is never auto-cancelled — it simply stays open and empty.
//
// Returns the newly cancelled names so the caller can decide whether
// another loop pass is warranted.
func (e *Engine) checkAndCancelActivities() []string {
	var newly []string
	for _, a := range e.activities {
		if a.Cancelled {
			continue
		}
		n := len(e.members[a.Name])
		if n == 0 || n >= a.Min {
			continue
		}

		a.Cancelled = true
		newly = append(newly, a.Name)
		e.stats.Cancelled = append(e.stats.Cancelled, a.Name)

		for _, name := range e.Members(a.Name) {
			e.release(e.personByName(name))
		}
	}
	return newly
}

// personByName resolves a member-list entry back to the person record.
// Member lists only ever hold names from the roster, so a miss is a
// broken invariant and panics.
func (e *Engine) personByName(name string) *roster.Person {
	p, ok := e.peopleIdx[name]
	if !ok {
		panic("engine: member list references unknown person " + name)
	}
	return p
}
