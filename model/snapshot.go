package model

import (
	"sort"
	"time"
)

// Snapshot is an immutable copy of the resource model state.  Graph building
// and cycle detection operate exclusively on snapshots so that they never
// observe (or cause) partial mutations.
type Snapshot struct {
	Processes   map[string]Process  `json:"processes"`
	Resources   map[string]Resource `json:"resources"`
	Allocations []Allocation        `json:"allocations"`
	Requests    []Request           `json:"requests"`
	TakenAt     time.Time           `json:"takenAt"`
}

// ProcessIDs returns registered process identifiers in ascending order.
func (s *Snapshot) ProcessIDs() []string {
	ids := make([]string, 0, len(s.Processes))
	for id := range s.Processes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResourceIDs returns registered resource identifiers in ascending order.
func (s *Snapshot) ResourceIDs() []string {
	ids := make([]string, 0, len(s.Resources))
	for id := range s.Resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Held returns the instance count of resource held by process, zero when no
// allocation edge exists.
func (s *Snapshot) Held(process, resource string) int {
	for i := range s.Allocations {
		a := &s.Allocations[i]
		if a.Process == process && a.Resource == resource {
			return a.Count
		}
	}
	return 0
}

// Holders returns the allocations of the supplied resource ordered by
// ascending holder process id.
func (s *Snapshot) Holders(resource string) []Allocation {
	var out []Allocation
	for i := range s.Allocations {
		if s.Allocations[i].Resource == resource {
			out = append(out, s.Allocations[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Process < out[j].Process })
	return out
}

// HeldBy returns the allocations held by the supplied process ordered by
// ascending resource id.
func (s *Snapshot) HeldBy(process string) []Allocation {
	var out []Allocation
	for i := range s.Allocations {
		if s.Allocations[i].Process == process {
			out = append(out, s.Allocations[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

// TotalHeld returns the total number of instances (across all resources) held
// by the supplied process.
func (s *Snapshot) TotalHeld(process string) int {
	total := 0
	for i := range s.Allocations {
		if s.Allocations[i].Process == process {
			total += s.Allocations[i].Count
		}
	}
	return total
}

// RequestsBy returns the outstanding requests of the supplied process ordered
// by ascending resource id.
func (s *Snapshot) RequestsBy(process string) []Request {
	var out []Request
	for i := range s.Requests {
		if s.Requests[i].Process == process {
			out = append(out, s.Requests[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

// RequestsFor returns the outstanding requests for the supplied resource in
// arrival (sequence) order.
func (s *Snapshot) RequestsFor(resource string) []Request {
	var out []Request
	for i := range s.Requests {
		if s.Requests[i].Resource == resource {
			out = append(out, s.Requests[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// Matrix is a dense allocation/request view of a snapshot, intended for
// presentation collaborators (tabular or graphical rendering).  Rows follow
// Processes order, columns follow Resources order.
type Matrix struct {
	Processes  []string `json:"processes"`
	Resources  []string `json:"resources"`
	Allocation [][]int  `json:"allocation"`
	Request    [][]int  `json:"request"`
	Available  []int    `json:"available"`
}

// Matrix derives the dense view from the snapshot.
func (s *Snapshot) Matrix() *Matrix {
	m := &Matrix{
		Processes: s.ProcessIDs(),
		Resources: s.ResourceIDs(),
	}
	col := make(map[string]int, len(m.Resources))
	for i, id := range m.Resources {
		col[id] = i
	}
	row := make(map[string]int, len(m.Processes))
	for i, id := range m.Processes {
		row[id] = i
	}
	m.Allocation = make([][]int, len(m.Processes))
	m.Request = make([][]int, len(m.Processes))
	for i := range m.Processes {
		m.Allocation[i] = make([]int, len(m.Resources))
		m.Request[i] = make([]int, len(m.Resources))
	}
	for i := range s.Allocations {
		a := &s.Allocations[i]
		m.Allocation[row[a.Process]][col[a.Resource]] = a.Count
	}
	for i := range s.Requests {
		r := &s.Requests[i]
		m.Request[row[r.Process]][col[r.Resource]] = r.Count
	}
	m.Available = make([]int, len(m.Resources))
	for i, id := range m.Resources {
		m.Available[i] = s.Resources[id].Available
	}
	return m
}
