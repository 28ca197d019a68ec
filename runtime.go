package gridlock

import (
	"context"

	"github.com/gridlock/gridlock/model"
	"github.com/gridlock/gridlock/model/graph"
	"github.com/gridlock/gridlock/model/plan"
	"github.com/gridlock/gridlock/progress"
	"github.com/gridlock/gridlock/service/builder"
	"github.com/gridlock/gridlock/service/detector"
	"github.com/gridlock/gridlock/service/event"
	"github.com/gridlock/gridlock/service/monitor"
	"github.com/gridlock/gridlock/service/registry"
	"github.com/gridlock/gridlock/service/resolver"
	"github.com/gridlock/gridlock/service/scenario"
	"github.com/gridlock/gridlock/service/sched"
	"github.com/gridlock/gridlock/tracing"
)

// Runtime exposes the engine operations over a shared resource model.
type Runtime struct {
	registry  *registry.Service
	detector  detector.Service
	resolver  *resolver.Service
	scenarios *scenario.Service
	monitor   *monitor.Service
	events    *event.Service
}

// Registry returns the underlying resource model.
func (r *Runtime) Registry() *registry.Service {
	return r.registry
}

// Events returns the event service shared by the runtime.
func (r *Runtime) Events() *event.Service {
	return r.events
}

// Scenarios lists all registered scenario definitions.
func (r *Runtime) Scenarios() []*scenario.Definition {
	return r.scenarios.Scenarios()
}

// ScenarioService returns the scenario catalog.
func (r *Runtime) ScenarioService() *scenario.Service {
	return r.scenarios
}

// Snapshot returns a consistent copy of the current model state.
func (r *Runtime) Snapshot() *model.Snapshot {
	return r.registry.Snapshot()
}

// RegisterProcess adds a process to the model.
func (r *Runtime) RegisterProcess(ctx context.Context, id string, options ...registry.ProcessOption) error {
	return r.registry.RegisterProcess(ctx, id, options...)
}

// RegisterResource adds a resource type with the supplied instance count.
func (r *Runtime) RegisterResource(ctx context.Context, id string, total int) error {
	return r.registry.RegisterResource(ctx, id, total)
}

// RequestResource asks for count instances on behalf of a process; it returns
// true when the request was granted immediately.
func (r *Runtime) RequestResource(ctx context.Context, process, resource string, count int) (bool, error) {
	return r.registry.Request(ctx, process, resource, count)
}

// ReleaseResource returns count held instances to the pool.
func (r *Runtime) ReleaseResource(ctx context.Context, process, resource string, count int) error {
	return r.registry.Release(ctx, process, resource, count)
}

// CancelRequest withdraws a pending request.
func (r *Runtime) CancelRequest(ctx context.Context, process, resource string) error {
	return r.registry.Cancel(ctx, process, resource)
}

// Graph builds the resource-allocation graph for the current state.
func (r *Runtime) Graph() *graph.RAG {
	return builder.Build(r.registry.Snapshot())
}

// WaitFor collapses the current allocation graph to its wait-for view.
func (r *Runtime) WaitFor() *graph.WaitFor {
	snap := r.registry.Snapshot()
	return builder.ReduceToWaitFor(builder.Build(snap), snap)
}

// Detect builds the allocation graph for the current state and returns all
// confirmed deadlock cycles, in deterministic order.
func (r *Runtime) Detect(ctx context.Context) []*graph.Cycle {
	ctx, span := tracing.StartSpan(ctx, "gridlock.Detect", "internal")
	snap := r.registry.Snapshot()
	cycles := r.detector.Detect(builder.Build(snap), snap)
	progress.FromContext(ctx).Update(progress.Delta{Detections: 1, CyclesFound: len(cycles)})
	tracing.EndSpan(span, nil)
	return cycles
}

// Resolve applies the resolution engine to the supplied cycles and returns
// the actions taken together with the post-resolution state.
func (r *Runtime) Resolve(ctx context.Context, cycles []*graph.Cycle) (*plan.Plan, *model.Snapshot, error) {
	ctx, span := tracing.StartSpan(ctx, "gridlock.Resolve", "internal")
	aPlan, err := r.resolver.Resolve(ctx, cycles)
	tracing.EndSpan(span, err)
	if aPlan != nil {
		var preemptions, terminations int
		for _, action := range aPlan.Actions {
			switch action.Kind {
			case plan.KindPreempt:
				preemptions++
			case plan.KindTerminate:
				terminations++
			}
		}
		progress.FromContext(ctx).Update(progress.Delta{Preemptions: preemptions, Terminations: terminations})
	}
	return aPlan, r.registry.Snapshot(), err
}

// Safe reports whether the current state is safe in the banker's sense and
// returns a completion order witness when it is.
func (r *Runtime) Safe() (bool, []string) {
	return detector.SafeState(r.registry.Snapshot())
}

// Stalled lists processes that cannot finish from the current state.
func (r *Runtime) Stalled() []string {
	return detector.Stalled(r.registry.Snapshot())
}

// LoadScenario resets the model and replays the named built-in or registered
// scenario into it.
func (r *Runtime) LoadScenario(ctx context.Context, name string) error {
	def, err := r.scenarios.Lookup(name)
	if err != nil {
		return err
	}
	return def.Replay(ctx, r.registry)
}

// Submit enqueues an ingestion command for serialized application by the
// monitor loop.
func (r *Runtime) Submit(ctx context.Context, command monitor.Command) error {
	return r.monitor.Submit(ctx, command)
}

// Start runs the monitor ingestion loop and detection sweeps until the
// context is cancelled or Shutdown is called.
func (r *Runtime) Start(ctx context.Context) error {
	return r.monitor.Start(ctx)
}

// Shutdown stops the monitor loop.
func (r *Runtime) Shutdown() {
	r.monitor.Shutdown()
}

// ScheduleEntries derives simulation entries from the current model: one per
// live process, with the default burst and the registered priority.
func (r *Runtime) ScheduleEntries(burst int) []sched.Entry {
	snap := r.registry.Snapshot()
	var entries []sched.Entry
	for _, id := range snap.ProcessIDs() {
		process := snap.Processes[id]
		if process.Status == model.StatusTerminated {
			continue
		}
		entries = append(entries, sched.Entry{Process: id, Burst: burst, Priority: process.Priority})
	}
	return entries
}

// Simulate runs the supplied scheduler over the entries and returns the
// per-tick history.
func (r *Runtime) Simulate(scheduler sched.Scheduler, entries []sched.Entry) sched.History {
	return scheduler.Simulate(entries)
}
