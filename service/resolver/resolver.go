package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gridlock/gridlock/model"
	"github.com/gridlock/gridlock/model/graph"
	"github.com/gridlock/gridlock/model/plan"
	"github.com/gridlock/gridlock/policy"
	"github.com/gridlock/gridlock/service/builder"
	"github.com/gridlock/gridlock/service/detector"
	"github.com/gridlock/gridlock/service/registry"
)

var (
	// ErrNoDeadlock is returned when resolve is invoked with no cycles.
	ErrNoDeadlock = errors.New("resolver: no deadlock")

	// ErrResolutionFailed indicates cycles remain after the strategy is
	// exhausted; the caller should re-run detection and resolve the rest.
	ErrResolutionFailed = errors.New("resolver: resolution failed")
)

// Service is the resolution engine.  Given detected cycles it computes and
// applies an ordered plan of preemption and termination actions against the
// resource model, rechecking the wait-for graph after every action so it can
// stop as early as possible.
type Service struct {
	registry *registry.Service
	detector *detector.Service
	policy   *policy.Policy
}

// Option customises the resolver.
type Option func(s *Service)

// WithPolicy overrides the victim-selection policy.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// New creates a resolution engine bound to the supplied resource model.
func New(reg *registry.Service, options ...Option) *Service {
	s := &Service{
		registry: reg,
		detector: detector.New(),
		policy:   policy.Default(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Resolve breaks the supplied cycles.  Per cycle it first tries minimum-cost
// preemption: release the smallest instance count that satisfies a blocking
// request, taken from the cycle member with the lowest preemption cost.  When
// no preemption breaks the cycle the member with the lowest termination cost
// is aborted, releasing everything it holds.  Actions are applied one at a
// time; the plan records what was actually done.  After all cycles are
// processed detection is re-run; if any cycle persists the applied plan is
// returned together with ErrResolutionFailed.
func (s *Service) Resolve(ctx context.Context, cycles []*graph.Cycle) (*plan.Plan, error) {
	if len(cycles) == 0 {
		return nil, ErrNoDeadlock
	}
	aPlan := plan.New()
	for _, cycle := range cycles {
		members := s.processMembers(cycle)
		if len(members) == 0 || s.broken(members) {
			continue
		}
		if err := s.breakCycle(ctx, aPlan, members); err != nil {
			return aPlan, err
		}
	}
	snap := s.registry.Snapshot()
	if remaining := s.detector.Detect(builder.Build(snap), snap); len(remaining) > 0 {
		return aPlan, fmt.Errorf("%w: %d cycle(s) remain", ErrResolutionFailed, len(remaining))
	}
	return aPlan, nil
}

// breakCycle applies the two-stage strategy to one cycle.  The preemption
// stage is bounded by the total instance count so a pathological candidate
// sequence cannot loop; once the budget or the candidates run out the
// termination fallback takes over.
func (s *Service) breakCycle(ctx context.Context, aPlan *plan.Plan, members map[string]bool) error {
	for budget := s.instanceBudget(); budget > 0; budget-- {
		candidate := s.preemption(members)
		if candidate == nil {
			break
		}
		if err := s.registry.Preempt(ctx, candidate.resource, candidate.process, candidate.count); err != nil {
			return fmt.Errorf("failed to preempt %q from %q: %w", candidate.resource, candidate.process, err)
		}
		aPlan.Preempt(candidate.resource, candidate.process, candidate.count)
		if s.broken(members) {
			return nil
		}
	}
	victim := s.terminationVictim(members)
	if victim == "" {
		return nil
	}
	if err := s.registry.Terminate(ctx, victim); err != nil {
		return fmt.Errorf("failed to terminate %q: %w", victim, err)
	}
	aPlan.Terminate(victim)
	return nil
}

type preemptCandidate struct {
	process  string
	resource string
	count    int
}

// preemption picks the next preemption candidate: cycle members ordered by
// preemption cost (ties by ascending id), and per member the held resource
// whose partial release satisfies a blocking request of another member with
// the smallest instance count.  Returns nil when no preemption can help.
func (s *Service) preemption(members map[string]bool) *preemptCandidate {
	snap := s.registry.Snapshot()
	cost := s.policy.PreemptCostOf()
	for _, victim := range s.rank(snap, members, cost) {
		var best *preemptCandidate
		for _, held := range snap.HeldBy(victim) {
			resource := snap.Resources[held.Resource]
			for _, request := range snap.RequestsFor(held.Resource) {
				if request.Process == victim || !members[request.Process] {
					continue
				}
				need := request.Count - resource.Available
				if need <= 0 || need > held.Count {
					continue
				}
				if best == nil || need < best.count {
					best = &preemptCandidate{process: victim, resource: held.Resource, count: need}
				}
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// terminationVictim picks the member with the lowest termination cost, ties
// by ascending id.  Only members still present in the model qualify.
func (s *Service) terminationVictim(members map[string]bool) string {
	snap := s.registry.Snapshot()
	ranked := s.rank(snap, members, s.policy.TerminateCostOf())
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0]
}

// rank orders the surviving members by ascending cost, ties by ascending id.
func (s *Service) rank(snap *model.Snapshot, members map[string]bool, cost policy.CostFunc) []string {
	var ids []string
	for id := range members {
		if _, ok := snap.Processes[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		ci := cost(snap.Processes[ids[i]], snap)
		cj := cost(snap.Processes[ids[j]], snap)
		if ci != cj {
			return ci < cj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// broken reports whether no confirmed cycle remains whose processes all
// belong to the members.  It re-runs detection over the allocation graph so
// the judgment uses the same multi-instance confirmation that reported the
// cycle in the first place; the wait-for reduction is too coarse here, since
// its deficit edges can attribute a member's wait to a holder outside the
// cycle.
func (s *Service) broken(members map[string]bool) bool {
	snap := s.registry.Snapshot()
	rag := builder.Build(snap)
	for _, cycle := range s.detector.Detect(rag, snap) {
		inside := true
		for _, id := range cycle.Processes(rag) {
			if !members[id] {
				inside = false
				break
			}
		}
		if inside {
			return false
		}
	}
	return true
}

// instanceBudget sums the instance totals of all registered resources.
func (s *Service) instanceBudget() int {
	snap := s.registry.Snapshot()
	total := 0
	for _, resource := range snap.Resources {
		total += resource.Total
	}
	return total
}

// processMembers resolves the cycle's process nodes against the current
// model; cycles over the allocation graph interleave resource nodes which
// are filtered out here.
func (s *Service) processMembers(cycle *graph.Cycle) map[string]bool {
	snap := s.registry.Snapshot()
	members := make(map[string]bool)
	for _, node := range cycle.Nodes {
		if _, ok := snap.Processes[node]; ok {
			members[node] = true
		}
	}
	return members
}
