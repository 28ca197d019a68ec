// Package model contains the in-memory representation of the resource
// allocation state operated on by the gridlock engine.
//
// Processes, resources and the allocation/request edges between them are kept
// in flat, identifier-keyed structures; the `graph` and `plan` sub-packages
// build on these primitives.  The root model package never holds pointers
// between entities, so snapshots are plain value copies.
package model
