// Package roster defines the records the assignment engine operates on:
// people with ranked activity preferences, activities with participant
// bounds, and the tri-state placement attached to each person.
//
// Records are created once from input data and never added or removed
// during a run. The engine mutates only a person's Placement and an
// activity's Cancelled flag.
//
// Names are the identity of both people and activities. All names are
// NFC-normalized at the load boundary (see Name) so that visually
// identical inputs in different Unicode encodings produce identical
// runs and identical result documents.
package roster
