// Package progress provides a lightweight tracker that keeps aggregated
// engine counters (mutations applied, detection passes, cycles found,
// resolution actions).  The tracker instance travels in the context – every
// component that receives the context can atomically update the counters via
// the Delta helper without requiring a global registry.
package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the monitor or
// the resolution engine.  Fields are signed so callers can also decrement.
type Delta struct {
	Mutations    int
	Detections   int
	CyclesFound  int
	Preemptions  int
	Terminations int
}

// Counters is the read-only view of the tracker state.
type Counters struct {
	StartedAt    time.Time
	Mutations    int
	Detections   int
	CyclesFound  int
	Preemptions  int
	Terminations int
}

// Progress keeps aggregated counters for one engine instance.  It is safe
// for concurrent use.
type Progress struct {
	mux      sync.Mutex
	counters Counters
	onChange func(Counters)
}

// New creates a tracker stamped with the current time.
func New() *Progress {
	return &Progress{counters: Counters{StartedAt: time.Now()}}
}

// Update applies the supplied delta.  If an onChange callback has been
// registered it is invoked with a copy of the updated counters outside the
// critical section so slow consumers cannot block engine internals.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.counters.Mutations += d.Mutations
	p.counters.Detections += d.Detections
	p.counters.CyclesFound += d.CyclesFound
	p.counters.Preemptions += d.Preemptions
	p.counters.Terminations += d.Terminations
	snapshot := p.counters
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters suitable for read-only inspection.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every update.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

type contextKey string

const progressKey contextKey = "gridlock-progress"

// WithProgress attaches a tracker to the context.
func WithProgress(ctx context.Context, p *Progress) context.Context {
	return context.WithValue(ctx, progressKey, p)
}

// FromContext returns the tracker carried by the context, or nil.  All
// Progress methods tolerate a nil receiver, so callers can update
// unconditionally.
func FromContext(ctx context.Context) *Progress {
	if ctx == nil {
		return nil
	}
	if p, ok := ctx.Value(progressKey).(*Progress); ok {
		return p
	}
	return nil
}
