package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gridlock/gridlock/internal/clock"
	"github.com/gridlock/gridlock/model"
)

type pairKey struct {
	resource string
	process  string
}

// Service is the resource model: the single owner of all process, resource
// and edge state.  Mutations are serialized behind one mutex and applied as a
// single logical step; every other component works off immutable snapshots.
type Service struct {
	mux         sync.RWMutex
	processes   map[string]*model.Process
	resources   map[string]*model.Resource
	allocations map[pairKey]*model.Allocation
	requests    map[pairKey]*model.Request
	sequence    uint64
}

// New returns an empty resource model.
func New() *Service {
	return &Service{
		processes:   make(map[string]*model.Process),
		resources:   make(map[string]*model.Resource),
		allocations: make(map[pairKey]*model.Allocation),
		requests:    make(map[pairKey]*model.Request),
	}
}

// ProcessOption customises process registration.
type ProcessOption func(p *model.Process)

// WithPriority assigns a scheduling/resolution priority to the process.
func WithPriority(priority int) ProcessOption {
	return func(p *model.Process) { p.Priority = priority }
}

// RegisterProcess adds a process to the model.
func (s *Service) RegisterProcess(_ context.Context, id string, options ...ProcessOption) error {
	if id == "" {
		return fmt.Errorf("%w: empty process id", ErrInvalidArgument)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.processes[id]; ok {
		return fmt.Errorf("%w: process %q", ErrDuplicateID, id)
	}
	process := &model.Process{ID: id, Status: model.StatusRunning}
	for _, option := range options {
		option(process)
	}
	s.processes[id] = process
	return nil
}

// RegisterResource adds a resource with the supplied instance total; all
// instances start available.
func (s *Service) RegisterResource(_ context.Context, id string, total int) error {
	if id == "" {
		return fmt.Errorf("%w: empty resource id", ErrInvalidArgument)
	}
	if total < 1 {
		return fmt.Errorf("%w: resource %q total %d, must be >= 1", ErrInvalidArgument, id, total)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.resources[id]; ok {
		return fmt.Errorf("%w: resource %q", ErrDuplicateID, id)
	}
	s.resources[id] = &model.Resource{ID: id, Total: total, Available: total}
	return nil
}

// DeregisterProcess removes a process that neither holds allocations nor has
// pending requests.
func (s *Service) DeregisterProcess(_ context.Context, id string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.processes[id]; !ok {
		return fmt.Errorf("%w: process %q", ErrUnknownEntity, id)
	}
	for key := range s.allocations {
		if key.process == id {
			return fmt.Errorf("%w: process %q still holds %q", ErrInvalidState, id, key.resource)
		}
	}
	for key := range s.requests {
		if key.process == id {
			return fmt.Errorf("%w: process %q has a pending request for %q", ErrInvalidState, id, key.resource)
		}
	}
	delete(s.processes, id)
	return nil
}

// Request asks for count instances of a resource.  When enough instances are
// available the request is granted immediately (allocation edge created or
// extended, no request edge).  Otherwise a request edge is recorded, merged
// with any existing edge for the pair, and the process turns waiting.  The
// returned flag reports whether the request was granted.  The call never
// blocks.
func (s *Service) Request(_ context.Context, process, resource string, count int) (bool, error) {
	if count <= 0 {
		return false, fmt.Errorf("%w: request count %d", ErrInvalidArgument, count)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	p, ok := s.processes[process]
	if !ok {
		return false, fmt.Errorf("%w: process %q", ErrUnknownEntity, process)
	}
	r, ok := s.resources[resource]
	if !ok {
		return false, fmt.Errorf("%w: resource %q", ErrUnknownEntity, resource)
	}
	if r.Available >= count {
		s.grant(r, p, count)
		return true, nil
	}
	key := pairKey{resource: resource, process: process}
	if pending, ok := s.requests[key]; ok {
		pending.Count += count
	} else {
		s.sequence++
		s.requests[key] = &model.Request{
			Process:  process,
			Resource: resource,
			Count:    count,
			Sequence: s.sequence,
		}
	}
	p.Status = model.StatusWaiting
	return false, nil
}

// Release returns count held instances of a resource, then satisfies pending
// requests for it in arrival order.
func (s *Service) Release(_ context.Context, process, resource string, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: release count %d", ErrInvalidArgument, count)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.processes[process]; !ok {
		return fmt.Errorf("%w: process %q", ErrUnknownEntity, process)
	}
	r, ok := s.resources[resource]
	if !ok {
		return fmt.Errorf("%w: resource %q", ErrUnknownEntity, resource)
	}
	key := pairKey{resource: resource, process: process}
	held, ok := s.allocations[key]
	if !ok {
		return fmt.Errorf("%w: process %q holds no %q", ErrInvalidState, process, resource)
	}
	if count > held.Count {
		return fmt.Errorf("%w: process %q holds %d of %q, cannot release %d", ErrInvalidState, process, held.Count, resource, count)
	}
	held.Count -= count
	if held.Count == 0 {
		delete(s.allocations, key)
	}
	r.Available += count
	s.satisfy(r)
	return nil
}

// Cancel withdraws a pending request.  The process turns back to running when
// no other pending requests remain.
func (s *Service) Cancel(_ context.Context, process, resource string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	p, ok := s.processes[process]
	if !ok {
		return fmt.Errorf("%w: process %q", ErrUnknownEntity, process)
	}
	key := pairKey{resource: resource, process: process}
	if _, ok := s.requests[key]; !ok {
		return fmt.Errorf("%w: no pending request of %q for %q", ErrNotFound, process, resource)
	}
	delete(s.requests, key)
	if !s.hasPending(process) {
		p.Status = model.StatusRunning
	}
	return nil
}

// Preempt forcibly reclaims count instances of a resource from a process.
// The reclaimed need is re-recorded as a fresh request edge (the victim still
// wants the instances, but now queues behind earlier waiters), then pending
// requests are satisfied in arrival order.
func (s *Service) Preempt(_ context.Context, resource, process string, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: preempt count %d", ErrInvalidArgument, count)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	victim, ok := s.processes[process]
	if !ok {
		return fmt.Errorf("%w: process %q", ErrUnknownEntity, process)
	}
	r, ok := s.resources[resource]
	if !ok {
		return fmt.Errorf("%w: resource %q", ErrUnknownEntity, resource)
	}
	key := pairKey{resource: resource, process: process}
	held, ok := s.allocations[key]
	if !ok || count > held.Count {
		return fmt.Errorf("%w: cannot preempt %d of %q from %q", ErrInvalidState, count, resource, process)
	}
	held.Count -= count
	if held.Count == 0 {
		delete(s.allocations, key)
	}
	r.Available += count
	if pending, ok := s.requests[key]; ok {
		pending.Count += count
	} else {
		s.sequence++
		s.requests[key] = &model.Request{
			Process:  process,
			Resource: resource,
			Count:    count,
			Sequence: s.sequence,
		}
	}
	victim.Status = model.StatusWaiting
	s.satisfy(r)
	return nil
}

// Terminate aborts a process: all held instances are released back to their
// pools (waking queued requesters FIFO), its pending requests are dropped and
// the process is removed from the model.
func (s *Service) Terminate(_ context.Context, process string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.processes[process]; !ok {
		return fmt.Errorf("%w: process %q", ErrUnknownEntity, process)
	}
	for key := range s.requests {
		if key.process == process {
			delete(s.requests, key)
		}
	}
	// Release in ascending resource id so that wakeups are reproducible.
	var freed []string
	for key := range s.allocations {
		if key.process == process {
			freed = append(freed, key.resource)
		}
	}
	sort.Strings(freed)
	for _, resource := range freed {
		key := pairKey{resource: resource, process: process}
		held := s.allocations[key]
		delete(s.allocations, key)
		r := s.resources[resource]
		r.Available += held.Count
		s.satisfy(r)
	}
	delete(s.processes, process)
	return nil
}

// Snapshot returns an immutable copy of the current state.
func (s *Service) Snapshot() *model.Snapshot {
	s.mux.RLock()
	defer s.mux.RUnlock()
	snap := &model.Snapshot{
		Processes: make(map[string]model.Process, len(s.processes)),
		Resources: make(map[string]model.Resource, len(s.resources)),
		TakenAt:   clock.Now(),
	}
	for id, p := range s.processes {
		snap.Processes[id] = *p
	}
	for id, r := range s.resources {
		snap.Resources[id] = *r
	}
	snap.Allocations = make([]model.Allocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		snap.Allocations = append(snap.Allocations, *a)
	}
	sort.Slice(snap.Allocations, func(i, j int) bool {
		if snap.Allocations[i].Resource != snap.Allocations[j].Resource {
			return snap.Allocations[i].Resource < snap.Allocations[j].Resource
		}
		return snap.Allocations[i].Process < snap.Allocations[j].Process
	})
	snap.Requests = make([]model.Request, 0, len(s.requests))
	for _, r := range s.requests {
		snap.Requests = append(snap.Requests, *r)
	}
	sort.Slice(snap.Requests, func(i, j int) bool {
		return snap.Requests[i].Sequence < snap.Requests[j].Sequence
	})
	return snap
}

// Reset drops all state; used when loading a scenario into a fresh model.
func (s *Service) Reset() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.processes = make(map[string]*model.Process)
	s.resources = make(map[string]*model.Resource)
	s.allocations = make(map[pairKey]*model.Allocation)
	s.requests = make(map[pairKey]*model.Request)
	s.sequence = 0
}

// grant merges count instances into the allocation edge; caller holds mux.
func (s *Service) grant(r *model.Resource, p *model.Process, count int) {
	key := pairKey{resource: r.ID, process: p.ID}
	if held, ok := s.allocations[key]; ok {
		held.Count += count
	} else {
		s.allocations[key] = &model.Allocation{Resource: r.ID, Process: p.ID, Count: count}
	}
	r.Available -= count
}

// satisfy promotes pending requests for the resource in arrival order.  A
// request is promoted only in full; promotion stops at the first request the
// available pool can no longer cover, which preserves strict FIFO fairness.
func (s *Service) satisfy(r *model.Resource) {
	pending := make([]*model.Request, 0)
	for key, request := range s.requests {
		if key.resource == r.ID {
			pending = append(pending, request)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Sequence < pending[j].Sequence })
	for _, request := range pending {
		if r.Available < request.Count {
			break
		}
		p := s.processes[request.Process]
		s.grant(r, p, request.Count)
		delete(s.requests, pairKey{resource: r.ID, process: request.Process})
		if !s.hasPending(request.Process) {
			p.Status = model.StatusRunning
		}
	}
}

// hasPending reports whether the process still has outstanding requests;
// caller holds mux.
func (s *Service) hasPending(process string) bool {
	for key := range s.requests {
		if key.process == process {
			return true
		}
	}
	return false
}
