package detector

import (
	"github.com/gridlock/gridlock/model"
	"github.com/gridlock/gridlock/model/graph"
)

// Service runs cycle detection over derived graphs.  Detection is read-only
// and deterministic: nodes and edges are visited in ascending identifier
// order, so repeated runs over the same snapshot return equal cycle lists.
type Service struct{}

// New creates a detector service.
func New() *Service {
	return &Service{}
}

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// Cycles performs a depth-first traversal over any directed graph and
// returns the cycles found.  A back-edge to a node still on the recursion
// stack yields the stack slice from that node to the current node as a
// cycle.  Fully explored nodes are never re-entered, so the pass is
// O(P + E) per traversal.
func (s *Service) Cycles(g graph.Directed) []*graph.Cycle {
	color := make(map[string]int)
	index := make(map[string]int)
	var stack []string
	var out []*graph.Cycle

	var visit func(id string)
	visit = func(id string) {
		color[id] = colorGray
		index[id] = len(stack)
		stack = append(stack, id)
		for _, next := range g.Outgoing(id) {
			switch color[next] {
			case colorWhite:
				visit(next)
			case colorGray:
				nodes := append([]string(nil), stack[index[next]:]...)
				out = append(out, (&graph.Cycle{Nodes: nodes}).Canonical())
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = colorBlack
	}

	for _, id := range g.NodeIDs() {
		if color[id] == colorWhite {
			visit(id)
		}
	}
	return out
}

// Detect runs cycle detection over the allocation graph and suppresses
// false cycles.  With multi-instance resources a cycle is necessary but not
// sufficient for deadlock: when a resource in the cycle has enough relief
// outside the cycle (free instances plus instances held by non-members) to
// cover what the cycle members request, an external release can break the
// cycle and it is excluded from the result.
func (s *Service) Detect(rag *graph.RAG, snap *model.Snapshot) []*graph.Cycle {
	var out []*graph.Cycle
	for _, cycle := range s.Cycles(rag) {
		if s.confirmed(cycle, rag, snap) {
			out = append(out, cycle)
		}
	}
	return out
}

// confirmed verifies that no external release can break the cycle.
func (s *Service) confirmed(cycle *graph.Cycle, rag *graph.RAG, snap *model.Snapshot) bool {
	members := make(map[string]bool)
	for _, id := range cycle.Processes(rag) {
		members[id] = true
	}
	for _, node := range cycle.Nodes {
		kind, ok := rag.Kind(node)
		if !ok || kind != graph.NodeResource {
			continue
		}
		resource := snap.Resources[node]
		requested := 0
		for _, request := range snap.RequestsFor(node) {
			if members[request.Process] {
				requested += request.Count
			}
		}
		relief := resource.Available
		for _, held := range snap.Holders(node) {
			if !members[held.Process] {
				relief += held.Count
			}
		}
		if requested <= relief {
			return false
		}
	}
	return true
}
