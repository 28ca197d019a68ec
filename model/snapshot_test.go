package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Processes: map[string]Process{
			"p1": {ID: "p1", Status: StatusRunning},
			"p2": {ID: "p2", Status: StatusWaiting},
		},
		Resources: map[string]Resource{
			"r1": {ID: "r1", Total: 2, Available: 0},
			"r2": {ID: "r2", Total: 1, Available: 1},
		},
		Allocations: []Allocation{
			{Resource: "r1", Process: "p1", Count: 1},
			{Resource: "r1", Process: "p2", Count: 1},
		},
		Requests: []Request{
			{Process: "p2", Resource: "r1", Count: 1, Sequence: 2},
			{Process: "p1", Resource: "r2", Count: 1, Sequence: 1},
		},
	}
}

func TestSnapshot_Accessors(t *testing.T) {
	snap := testSnapshot()
	assert.Equal(t, []string{"p1", "p2"}, snap.ProcessIDs())
	assert.Equal(t, []string{"r1", "r2"}, snap.ResourceIDs())
	assert.Equal(t, 1, snap.Held("p1", "r1"))
	assert.Equal(t, 0, snap.Held("p1", "r2"))
	assert.Equal(t, 1, snap.TotalHeld("p2"))

	holders := snap.Holders("r1")
	assert.Len(t, holders, 2)
	assert.Equal(t, "p1", holders[0].Process)

	held := snap.HeldBy("p2")
	assert.Len(t, held, 1)
	assert.Equal(t, "r1", held[0].Resource)
}

func TestSnapshot_RequestsOrdering(t *testing.T) {
	snap := testSnapshot()
	byProcess := snap.RequestsBy("p2")
	assert.Len(t, byProcess, 1)
	assert.Equal(t, "r1", byProcess[0].Resource)

	forResource := snap.RequestsFor("r1")
	assert.Len(t, forResource, 1)
	assert.Equal(t, uint64(2), forResource[0].Sequence)
}

func TestSnapshot_Matrix(t *testing.T) {
	matrix := testSnapshot().Matrix()
	assert.Equal(t, []string{"p1", "p2"}, matrix.Processes)
	assert.Equal(t, []string{"r1", "r2"}, matrix.Resources)
	assert.Equal(t, [][]int{{1, 0}, {1, 0}}, matrix.Allocation)
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, matrix.Request)
	assert.Equal(t, []int{0, 1}, matrix.Available)
}
