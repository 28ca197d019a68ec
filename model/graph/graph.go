package graph

import "sort"

// NodeKind discriminates process and resource nodes in the allocation graph.
type NodeKind string

const (
	NodeProcess  NodeKind = "process"
	NodeResource NodeKind = "resource"
)

// EdgeKind discriminates allocation (resource → process) and request
// (process → resource) edges.
type EdgeKind string

const (
	EdgeAllocation EdgeKind = "allocation"
	EdgeRequest    EdgeKind = "request"
)

// Edge is a directed, counted edge of the resource allocation graph.
type Edge struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Kind  EdgeKind `json:"kind"`
	Count int      `json:"count"`
}

// Directed is the minimal read interface shared by the allocation graph and
// the derived wait-for graph.  Both node and edge iteration order is
// ascending by identifier, which makes traversals reproducible.
type Directed interface {
	NodeIDs() []string
	Outgoing(id string) []string
}

// RAG is the resource allocation graph: a directed graph over the union of
// process and resource nodes with allocation and request edges.
type RAG struct {
	Kinds map[string]NodeKind `json:"kinds"`
	Edges map[string][]Edge   `json:"edges"`
}

// NewRAG returns an empty allocation graph.
func NewRAG() *RAG {
	return &RAG{
		Kinds: make(map[string]NodeKind),
		Edges: make(map[string][]Edge),
	}
}

// AddNode registers a node; adding an existing node is a no-op.
func (g *RAG) AddNode(id string, kind NodeKind) {
	if _, ok := g.Kinds[id]; ok {
		return
	}
	g.Kinds[id] = kind
}

// AddEdge appends a directed edge.  Callers are expected to pre-merge counts;
// the graph does not deduplicate.
func (g *RAG) AddEdge(edge Edge) {
	g.Edges[edge.From] = append(g.Edges[edge.From], edge)
}

// Sort orders outgoing edge lists by target id.  Builders call it once after
// population so that traversal order is deterministic.
func (g *RAG) Sort() {
	for id := range g.Edges {
		edges := g.Edges[id]
		sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	}
}

// NodeIDs returns all node identifiers in ascending order.
func (g *RAG) NodeIDs() []string {
	ids := make([]string, 0, len(g.Kinds))
	for id := range g.Kinds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Outgoing returns the targets of the node's outgoing edges in ascending
// order.
func (g *RAG) Outgoing(id string) []string {
	edges := g.Edges[id]
	out := make([]string, 0, len(edges))
	for i := range edges {
		out = append(out, edges[i].To)
	}
	return out
}

// Kind returns the node kind; the second value reports node presence.
func (g *RAG) Kind(id string) (NodeKind, bool) {
	kind, ok := g.Kinds[id]
	return kind, ok
}

// WaitFor is the reduced wait-for graph over process nodes only.  An edge
// P1 → P2 means P1 cannot proceed until P2 releases instances it holds.
type WaitFor struct {
	Nodes map[string]bool     `json:"nodes"`
	Edges map[string][]string `json:"edges"`
}

// NewWaitFor returns an empty wait-for graph.
func NewWaitFor() *WaitFor {
	return &WaitFor{
		Nodes: make(map[string]bool),
		Edges: make(map[string][]string),
	}
}

// AddNode registers a process node.
func (g *WaitFor) AddNode(id string) {
	g.Nodes[id] = true
}

// AddEdge adds a wait-for edge, ignoring duplicates and self references.
func (g *WaitFor) AddEdge(from, to string) {
	if from == to {
		return
	}
	for _, existing := range g.Edges[from] {
		if existing == to {
			return
		}
	}
	g.Edges[from] = append(g.Edges[from], to)
}

// Sort orders adjacency lists by target id.
func (g *WaitFor) Sort() {
	for id := range g.Edges {
		sort.Strings(g.Edges[id])
	}
}

// NodeIDs returns process identifiers in ascending order.
func (g *WaitFor) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Outgoing returns wait-for targets in ascending order.
func (g *WaitFor) Outgoing(id string) []string {
	return g.Edges[id]
}
