package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycle_Canonical(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []string
		expected []string
	}{
		{
			name:     "already canonical",
			nodes:    []string{"p1", "r2", "p2", "r1"},
			expected: []string{"p1", "r2", "p2", "r1"},
		},
		{
			name:     "rotated",
			nodes:    []string{"p2", "r1", "p1", "r2"},
			expected: []string{"p1", "r2", "p2", "r1"},
		},
		{
			name:     "empty",
			nodes:    nil,
			expected: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := (&Cycle{Nodes: tc.nodes}).Canonical()
			assert.EqualValues(t, tc.expected, actual.Nodes)
		})
	}
}

func TestCycle_Equal(t *testing.T) {
	a := &Cycle{Nodes: []string{"p1", "r2", "p2", "r1"}}
	b := &Cycle{Nodes: []string{"p2", "r1", "p1", "r2"}}
	c := &Cycle{Nodes: []string{"p1", "r1"}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestCycle_String(t *testing.T) {
	c := &Cycle{Nodes: []string{"p1", "r2", "p2", "r1"}}
	assert.Equal(t, "p1 -> r2 -> p2 -> r1 -> p1", c.String())
}

func TestCycle_Processes(t *testing.T) {
	g := NewRAG()
	g.AddNode("p1", NodeProcess)
	g.AddNode("p2", NodeProcess)
	g.AddNode("r1", NodeResource)
	g.AddNode("r2", NodeResource)
	c := &Cycle{Nodes: []string{"p1", "r2", "p2", "r1"}}
	assert.Equal(t, []string{"p1", "p2"}, c.Processes(g))
	assert.Equal(t, []string{"p1", "r2", "p2", "r1"}, c.Processes(nil))
}

func TestWaitFor_AddEdge(t *testing.T) {
	wf := NewWaitFor()
	wf.AddNode("p1")
	wf.AddNode("p2")
	wf.AddEdge("p1", "p2")
	wf.AddEdge("p1", "p2") // duplicate ignored
	wf.AddEdge("p1", "p1") // self loop ignored
	assert.Equal(t, []string{"p2"}, wf.Outgoing("p1"))
	assert.Equal(t, []string{"p1", "p2"}, wf.NodeIDs())
}
