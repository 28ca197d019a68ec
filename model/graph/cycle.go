package graph

import "strings"

// Cycle is a closed path detected in an allocation or wait-for graph.  Nodes
// holds the path without repeating the closing node; String renders the
// closed form.
type Cycle struct {
	Nodes []string `json:"nodes"`
}

// Canonical returns the cycle rotated so that it starts at its smallest node
// id.  Two cycles that are rotations of each other canonicalise to the same
// node sequence, which keeps detection output stable across runs.
func (c *Cycle) Canonical() *Cycle {
	if len(c.Nodes) == 0 {
		return c
	}
	start := 0
	for i, id := range c.Nodes {
		if id < c.Nodes[start] {
			start = i
		}
	}
	rotated := make([]string, 0, len(c.Nodes))
	rotated = append(rotated, c.Nodes[start:]...)
	rotated = append(rotated, c.Nodes[:start]...)
	return &Cycle{Nodes: rotated}
}

// Contains reports whether the supplied node participates in the cycle.
func (c *Cycle) Contains(id string) bool {
	for _, node := range c.Nodes {
		if node == id {
			return true
		}
	}
	return false
}

// Members returns the participating node ids as a set.
func (c *Cycle) Members() map[string]bool {
	out := make(map[string]bool, len(c.Nodes))
	for _, node := range c.Nodes {
		out[node] = true
	}
	return out
}

// Processes filters the cycle's nodes down to process nodes using the
// supplied allocation graph.  For wait-for cycles (process nodes only) it
// returns all nodes.
func (c *Cycle) Processes(g *RAG) []string {
	if g == nil {
		return append([]string(nil), c.Nodes...)
	}
	var out []string
	for _, node := range c.Nodes {
		if kind, ok := g.Kind(node); ok && kind == NodeProcess {
			out = append(out, node)
		}
	}
	return out
}

// Equal reports whether two cycles contain the same closed path, ignoring
// rotation.
func (c *Cycle) Equal(other *Cycle) bool {
	if other == nil || len(c.Nodes) != len(other.Nodes) {
		return false
	}
	a, b := c.Canonical(), other.Canonical()
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			return false
		}
	}
	return true
}

func (c *Cycle) String() string {
	if len(c.Nodes) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c.Nodes...), c.Nodes[0]), " -> ")
}
