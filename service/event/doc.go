// Package event provides typed publish/subscribe plumbing for engine
// notifications: applied mutations, completed detection passes and applied
// resolution plans.  Presentation collaborators subscribe instead of polling
// the resource model.
package event
