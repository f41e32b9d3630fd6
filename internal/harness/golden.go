package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the full result
// document against a golden file. The golden file is stored in
// testdata/golden/{scenario.Name}.golden and holds the document exactly
// as the CLI writes it: four-space indentation, trailing newline.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for the result document
// contract: any change to counters, ordering, or JSON shape shows up
// as a byte diff.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	doc, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return err
	}
	doc = append(doc, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, doc)

	return nil
}
