// Package harness provides scenario-based conformance testing for the
// assignment engine.
//
// The harness loads roster scenarios, runs the real engine over them,
// and validates the settled result against declared expectations and
// golden result documents.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	activities:
//	  - name: climbing
//	    min_participants: 2
//	    max_participants: 8
//	people:
//	  - name: ana
//	    preferences: [climbing, chess]
//	expect:
//	  summary: {n1: 2, n2: 1, unassigned: 0}
//	  cancelled: []
//	  assignments:
//	    climbing: [ana, ben]
//	  unassigned: []
//
// # Expectation Semantics
//
// Each expect clause is optional and only evaluated when present:
//
//   - summary: full match on the n1..n4 and unassigned counters
//     (omitted counters default to zero)
//   - cancelled: exact match, in cancellation order
//   - assignments: exact member list, in assignment order, for each
//     listed activity; other activities are not checked
//   - unassigned: exact match, in roster order
//
// # Deterministic Testing
//
// The engine is deterministic by contract, so scenarios need no clock
// or token fixtures: identical inputs settle to byte-identical result
// documents, which makes golden comparison of the full document
// meaningful.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/rescue.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, failure := range harness.Evaluate(result, scenario.Expect) {
//	    log.Println(failure)
//	}
package harness
