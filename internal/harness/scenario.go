package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a roster, a catalog, and
// the expected settled outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Activities is the activity catalog, in catalog order.
	Activities []ActivityInput `yaml:"activities"`

	// People is the roster, in input order. Order matters: the engine's
	// tie-breaks follow it.
	People []PersonInput `yaml:"people"`

	// Expect declares the settled outcome to validate.
	Expect Expectation `yaml:"expect"`
}

// ActivityInput mirrors the activity document schema.
type ActivityInput struct {
	Name string `yaml:"name"`
	Min  int    `yaml:"min_participants"`
	Max  int    `yaml:"max_participants"`
}

// PersonInput mirrors the people document schema.
type PersonInput struct {
	Name        string   `yaml:"name"`
	Preferences []string `yaml:"preferences,omitempty"`
}

// Expectation declares assertions on the settled result. Each clause is
// optional; only present clauses are evaluated. See the package
// documentation for the exact semantics.
type Expectation struct {
	Summary     *SummaryExpect      `yaml:"summary,omitempty"`
	Cancelled   []string            `yaml:"cancelled,omitempty"`
	Assignments map[string][]string `yaml:"assignments,omitempty"`
	Unassigned  []string            `yaml:"unassigned,omitempty"`
}

// SummaryExpect is a full match on the headline counters. Omitted
// fields default to zero, so a scenario only spells out the counters it
// expects to be non-zero.
type SummaryExpect struct {
	N1         int `yaml:"n1"`
	N2         int `yaml:"n2"`
	N3         int `yaml:"n3"`
	N4         int `yaml:"n4"`
	Unassigned int `yaml:"unassigned"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expectation:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml scenario under dir, sorted by file
// name so test ordering is stable.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	for i, a := range s.Activities {
		if a.Name == "" {
			return fmt.Errorf("activities[%d]: name is required", i)
		}
	}
	for i, p := range s.People {
		if p.Name == "" {
			return fmt.Errorf("people[%d]: name is required", i)
		}
	}

	e := s.Expect
	if e.Summary == nil && e.Cancelled == nil && e.Assignments == nil && e.Unassigned == nil {
		return fmt.Errorf("expect must declare at least one clause")
	}

	return nil
}
