// Package gridlock provides a deadlock detection and resolution engine.
//
// The engine maintains a shared resource model (processes, multi-instance
// resources, allocations and pending requests) and comes with pluggable
// service layers such as:
//
//   - registry – the serialized resource model
//   - builder  – resource-allocation and wait-for graph construction
//   - detector – cycle detection with multi-instance confirmation
//   - resolver – minimum-cost preemption and termination
//   - scenario – a catalog of replayable contention scenarios
//   - monitor  – queued ingestion plus a periodic detection sweep
//
// Gridlock is designed to be embedded in host applications.  End-users
// typically interact with the engine via the high-level Service façade
// exposed by the root package:
//
//	srv := gridlock.New()
//	rt  := srv.Runtime()
//	_ = rt.LoadScenario(ctx, "circular-wait")
//	cycles := rt.Detect(ctx)
//	plan, after, _ := rt.Resolve(ctx, cycles)
//
// For more details see the README and individual sub-packages.
package gridlock
