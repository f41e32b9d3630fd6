// Package engine implements the Placer assignment engine.
//
// The engine assigns a fixed population of people to capacity-bounded
// activities, honoring each person's ranked preferences while enforcing
// per-activity minimum and maximum participant counts. An activity that
// cannot reach its minimum is cancelled and its members redistributed.
//
// ARCHITECTURE:
//
// Single-Threaded Fixed-Point Loop:
// The engine is a synchronous, single-shot computation. Assign runs:
//  1. Seed pass: each person tries their first choice (or best-fit)
//  2. Optimization pass: rank-by-rank re-allocation (n1 first, then n2...)
//  3. Viability loop: rescue borderline activities by poaching surplus
//     members, cancel anything still below minimum, redistribute, repeat
//     until no rescue or cancellation happens
//  4. Final optimization pass to normalize assignments and statistics
//
// The loop terminates because cancellation is monotonic: cancelled
// activities never reactivate, so the set of open activities strictly
// shrinks on every iteration that cancels, and rescues are bounded by
// the surplus of the other activities.
//
// DETERMINISM:
// Reruns on identical input must produce byte-identical results, so
// every iteration order is pinned:
//   - people are processed in input order
//   - activities are scanned in catalog (input) order
//   - per-activity member lists keep insertion order
//   - candidate sorts are stable
//
// No Go map is ever ranged over on a path that affects the outcome.
//
// CONSISTENCY:
// A person appears in an activity's member list iff that person's
// Placement names the activity, and in at most one list at a time. All
// mutation flows through assignTo and release, which update the member
// list, the person record, and the statistics together. Statistics are
// never touched anywhere else.
//
// Business outcomes ("no space", "cannot rescue") are ordinary boolean
// returns, never errors. The only errors are input-integrity violations
// reported by New before any assignment work starts.
package engine
