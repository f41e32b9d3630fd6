package roster

import "fmt"

// PlacementKind distinguishes how (and whether) a person is assigned.
type PlacementKind int

const (
	// Unplaced means the person holds no assignment.
	Unplaced PlacementKind = iota

	// ByPreference means the person was assigned to an activity they
	// listed, at the recorded rank.
	ByPreference

	// ByBestFit means the person had no preferences and was placed by
	// the best-fit search. Best-fit placements report rank 0, so in
	// the output statistics they are indistinguishable from true
	// first-choice placements. That matches the historical behavior of
	// the system; the kind tag exists so callers can tell the cases
	// apart internally.
	ByBestFit
)

// Placement is a person's current assignment state.
//
// Activity and Rank are meaningful only when Kind is not Unplaced.
// The zero value is Unplaced.
type Placement struct {
	Kind     PlacementKind
	Activity string
	Rank     int
}

// Assigned reports whether the placement refers to an activity.
func (p Placement) Assigned() bool {
	return p.Kind != Unplaced
}

// Place returns a preference-rank placement.
func Place(activity string, rank int) Placement {
	return Placement{Kind: ByPreference, Activity: activity, Rank: rank}
}

// PlaceBestFit returns a best-fit placement. Rank is 0 by convention.
func PlaceBestFit(activity string) Placement {
	return Placement{Kind: ByBestFit, Activity: activity, Rank: 0}
}

// String implements fmt.Stringer for diagnostics.
func (p Placement) String() string {
	switch p.Kind {
	case Unplaced:
		return "unplaced"
	case ByBestFit:
		return fmt.Sprintf("best-fit(%s)", p.Activity)
	default:
		return fmt.Sprintf("%s@n%d", p.Activity, p.Rank+1)
	}
}
