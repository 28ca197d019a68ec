// Package policy defines the victim-selection policy used by the resolution
// engine.  It is deliberately decoupled from the resolver so that embedders
// can swap the cost heuristics – the defaults (fewest held instances for
// preemption, fewest outstanding requests for termination, lowest id as the
// tie-break) are a reasonable baseline, not a fixed rule.
package policy

import "github.com/gridlock/gridlock/model"

// CostFunc scores a candidate victim against a snapshot; lower cost is
// preferred.  Ties are always broken by ascending process id, outside the
// cost function.
type CostFunc func(process model.Process, snap *model.Snapshot) int

// Policy bundles the cost heuristics used when choosing which process to
// preempt resources from and which to terminate.  A nil *Policy means both
// defaults apply, making it the zero-cost option.
type Policy struct {
	PreemptCost   CostFunc
	TerminateCost CostFunc
}

// Default returns the baseline policy.
func Default() *Policy {
	return &Policy{
		PreemptCost:   HeldInstances,
		TerminateCost: OutstandingRequests,
	}
}

// HeldInstances scores a process by the total instances it holds, so that
// preemption disturbs the smallest holder first.
func HeldInstances(process model.Process, snap *model.Snapshot) int {
	return snap.TotalHeld(process.ID)
}

// OutstandingRequests scores a process by its pending request count, so that
// termination aborts the least entangled process first.
func OutstandingRequests(process model.Process, snap *model.Snapshot) int {
	return len(snap.RequestsBy(process.ID))
}

// Priority scores a process by its registered priority; lower priority
// processes are sacrificed first.
func Priority(process model.Process, _ *model.Snapshot) int {
	return process.Priority
}

// PreemptCostOf resolves the effective preemption cost function.
func (p *Policy) PreemptCostOf() CostFunc {
	if p == nil || p.PreemptCost == nil {
		return HeldInstances
	}
	return p.PreemptCost
}

// TerminateCostOf resolves the effective termination cost function.
func (p *Policy) TerminateCostOf() CostFunc {
	if p == nil || p.TerminateCost == nil {
		return OutstandingRequests
	}
	return p.TerminateCost
}
