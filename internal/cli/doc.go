// Package cli implements the placer command-line interface.
//
// Commands:
//   - run: load and validate input documents, run the assignment
//     engine, write the result document, optionally record the run
//   - validate: schema and integrity checks only, no engine run
//   - history: list or inspect recorded runs
//
// Input documents are schema-validated against an embedded CUE schema
// before decoding; referential integrity (duplicates, unknown
// preference targets, capacity bounds) is enforced by the engine
// constructor. All load and validation failures carry unified E-codes
// and map to exit code 1; environmental problems (unreadable paths,
// database errors) map to exit code 2.
package cli
