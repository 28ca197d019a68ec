package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridlock/gridlock/model/graph"
	"github.com/gridlock/gridlock/service/builder"
	"github.com/gridlock/gridlock/service/registry"
)

func twoProcessCycle(t *testing.T) *registry.Service {
	ctx := context.Background()
	reg := registry.New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))
	assert.NoError(t, reg.RegisterResource(ctx, "r2", 1))
	_, _ = reg.Request(ctx, "p1", "r1", 1)
	_, _ = reg.Request(ctx, "p2", "r2", 1)
	_, _ = reg.Request(ctx, "p1", "r2", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)
	return reg
}

func TestService_Cycles_Acyclic(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))
	_, _ = reg.Request(ctx, "p1", "r1", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)

	detector := New()
	snap := reg.Snapshot()
	assert.Empty(t, detector.Detect(builder.Build(snap), snap))
}

func TestService_Detect_TwoProcessCycle(t *testing.T) {
	reg := twoProcessCycle(t)
	detector := New()
	snap := reg.Snapshot()
	cycles := detector.Detect(builder.Build(snap), snap)
	assert.Len(t, cycles, 1)
	assert.Equal(t, []string{"p1", "r2", "p2", "r1"}, cycles[0].Nodes)
}

func TestService_Detect_Idempotent(t *testing.T) {
	reg := twoProcessCycle(t)
	detector := New()
	snap := reg.Snapshot()
	first := detector.Detect(builder.Build(snap), snap)
	second := detector.Detect(builder.Build(snap), snap)
	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestService_Detect_SuppressesFalseCycle(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	for _, id := range []string{"p1", "p2", "p3"} {
		assert.NoError(t, reg.RegisterProcess(ctx, id))
	}
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 2))
	assert.NoError(t, reg.RegisterResource(ctx, "r2", 1))

	// p1 and p2 form a cycle through r1/r2, but p3 holds an r1 instance
	// outside the cycle that can be released to break it
	_, _ = reg.Request(ctx, "p1", "r1", 1)
	_, _ = reg.Request(ctx, "p3", "r1", 1)
	_, _ = reg.Request(ctx, "p2", "r2", 1)
	_, _ = reg.Request(ctx, "p1", "r2", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)

	detector := New()
	snap := reg.Snapshot()
	cycles := detector.Detect(builder.Build(snap), snap)
	assert.Empty(t, cycles)

	// raw traversal still sees the structural cycle
	raw := detector.Cycles(builder.Build(snap))
	assert.NotEmpty(t, raw)
}

func TestService_Cycles_WaitForGraph(t *testing.T) {
	wf := graph.NewWaitFor()
	for _, id := range []string{"p1", "p2", "p3"} {
		wf.AddNode(id)
	}
	wf.AddEdge("p1", "p2")
	wf.AddEdge("p2", "p3")
	wf.AddEdge("p3", "p1")
	wf.Sort()

	cycles := New().Cycles(wf)
	assert.Len(t, cycles, 1)
	assert.Equal(t, []string{"p1", "p2", "p3"}, cycles[0].Nodes)
}

func TestSafeState(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 2))
	_, _ = reg.Request(ctx, "p1", "r1", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)

	safe, order := SafeState(reg.Snapshot())
	assert.True(t, safe)
	assert.Equal(t, []string{"p1", "p2"}, order)
	assert.Empty(t, Stalled(reg.Snapshot()))
}

func TestSafeState_Deadlocked(t *testing.T) {
	reg := twoProcessCycle(t)
	snap := reg.Snapshot()
	safe, order := SafeState(snap)
	assert.False(t, safe)
	assert.Empty(t, order)
	assert.Equal(t, []string{"p1", "p2"}, Stalled(snap))
}
