package registry

import "errors"

// Sentinel errors surfaced by resource model mutations.  Callers detect
// conditions via errors.Is instead of string comparison; every error leaves
// the model untouched (failed mutations are no-ops).

var (
	// ErrDuplicateID is returned when registering a process or resource whose
	// identifier already exists.
	ErrDuplicateID = errors.New("registry: duplicate id")

	// ErrUnknownEntity is returned when an operation references a process or
	// resource that was never registered (or has been removed).
	ErrUnknownEntity = errors.New("registry: unknown entity")

	// ErrInvalidArgument indicates a non-positive count or instance total.
	ErrInvalidArgument = errors.New("registry: invalid argument")

	// ErrInvalidState is returned when a release or preemption exceeds the
	// instances actually held, or no matching allocation edge exists.
	ErrInvalidState = errors.New("registry: invalid state")

	// ErrNotFound is returned by cancellation when no pending request edge
	// matches the supplied (process, resource) pair.
	ErrNotFound = errors.New("registry: not found")
)
