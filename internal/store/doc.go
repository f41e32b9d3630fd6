// Package store provides durable run history for the Placer CLI.
//
// Every engine run can be recorded as a single row: its token, when it
// ran, the headline counters, and the full result document as JSON.
// The store is an audit log, not engine state — the engine never reads
// from it, and deleting the database loses nothing but history.
//
// SQLite with WAL mode, single writer. Writes are idempotent on the
// run token so re-recording a run is harmless.
package store
