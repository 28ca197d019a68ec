// Package monitor accepts allocation events from live collaborators and
// applies them to the resource model one at a time in arrival order, so that
// concurrent submitters can never interleave mutations.  An optional ticker
// re-runs deadlock detection and publishes the result for subscribers.
package monitor
