package roster

import "golang.org/x/text/unicode/norm"

// MaxPreferences is the number of preference ranks the engine considers.
// Rank 0 is a person's first choice, rank 3 their fourth.
const MaxPreferences = 4

// Activity is a capacity-bounded activity people can be assigned to.
//
// Min and Max bound the participant count: an activity that ends up with
// fewer than Min members (but more than zero) is cancelled, and an open
// activity never accepts more than Max members. Cancellation is one-way:
// once Cancelled is set it is never cleared, and a cancelled activity
// accepts no new assignments.
type Activity struct {
	Name      string
	Min       int
	Max       int
	Cancelled bool
}

// Person is a participant with an ordered preference list.
//
// Preferences holds activity names in rank order (index 0 = first
// choice) and may be empty. Placement is the person's current
// assignment state; it is the only mutable field.
type Person struct {
	Name        string
	Preferences []string
	Placement   Placement
}

// Prefers returns the rank at which the person lists the activity,
// or -1 if the activity is not among their preferences. If an activity
// appears more than once, the lowest rank wins.
func (p *Person) Prefers(activity string) int {
	for i, name := range p.Preferences {
		if name == activity {
			return i
		}
	}
	return -1
}

// Name returns the NFC-normalized form of a person or activity name.
// Loaders must pass every name through this before constructing records
// so that membership sets and result documents are byte-stable.
func Name(s string) string {
	return norm.NFC.String(s)
}
