package harness

import (
	"fmt"

	"github.com/roach88/placer/internal/engine"
	"github.com/roach88/placer/internal/roster"
)

// Run executes a scenario against the real engine and returns the
// settled result document.
//
// Names are NFC-normalized the same way the CLI loader normalizes
// them, so scenarios behave exactly like input documents.
func Run(scenario *Scenario) (*engine.Result, error) {
	people := make([]*roster.Person, 0, len(scenario.People))
	for _, p := range scenario.People {
		prefs := make([]string, 0, len(p.Preferences))
		for _, pref := range p.Preferences {
			prefs = append(prefs, roster.Name(pref))
		}
		people = append(people, &roster.Person{
			Name:        roster.Name(p.Name),
			Preferences: prefs,
		})
	}

	activities := make([]*roster.Activity, 0, len(scenario.Activities))
	for _, a := range scenario.Activities {
		activities = append(activities, &roster.Activity{
			Name: roster.Name(a.Name),
			Min:  a.Min,
			Max:  a.Max,
		})
	}

	eng, err := engine.New(people, activities)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	return eng.Assign(), nil
}
