// Package resolver implements the resolution engine: it turns detected
// cycles into an ordered plan of preemption and termination actions, applies
// the plan to the resource model one action at a time, and verifies that the
// resulting state is cycle free.
package resolver
