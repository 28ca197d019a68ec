package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridlock/gridlock/model"
)

func TestService_RegisterAndRequest(t *testing.T) {
	ctx := context.Background()
	reg := New()

	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 2))

	granted, err := reg.Request(ctx, "p1", "r1", 1)
	assert.NoError(t, err)
	assert.True(t, granted)

	snap := reg.Snapshot()
	assert.Equal(t, 1, snap.Resources["r1"].Available)
	assert.Equal(t, 1, snap.Held("p1", "r1"))
	assert.Equal(t, model.StatusRunning, snap.Processes["p1"].Status)
}

func TestService_RequestBlocksWhenUnavailable(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	granted, _ := reg.Request(ctx, "p1", "r1", 1)
	assert.True(t, granted)
	granted, err := reg.Request(ctx, "p2", "r1", 1)
	assert.NoError(t, err)
	assert.False(t, granted)

	snap := reg.Snapshot()
	assert.Equal(t, model.StatusWaiting, snap.Processes["p2"].Status)
	assert.Len(t, snap.Requests, 1)

	// releasing wakes the waiter
	assert.NoError(t, reg.Release(ctx, "p1", "r1", 1))
	snap = reg.Snapshot()
	assert.Equal(t, 1, snap.Held("p2", "r1"))
	assert.Equal(t, model.StatusRunning, snap.Processes["p2"].Status)
	assert.Empty(t, snap.Requests)
}

func TestService_RequestExceedingTotalStaysPending(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 2))

	granted, err := reg.Request(ctx, "p1", "r1", 5)
	assert.NoError(t, err)
	assert.False(t, granted)
	snap := reg.Snapshot()
	assert.Equal(t, model.StatusWaiting, snap.Processes["p1"].Status)
	assert.Equal(t, 2, snap.Resources["r1"].Available)
}

func TestService_FIFOFairness(t *testing.T) {
	ctx := context.Background()
	reg := New()
	for _, id := range []string{"holder", "pa", "pb", "pc"} {
		assert.NoError(t, reg.RegisterProcess(ctx, id))
	}
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	granted, _ := reg.Request(ctx, "holder", "r1", 1)
	assert.True(t, granted)
	for _, id := range []string{"pa", "pb", "pc"} {
		granted, _ = reg.Request(ctx, id, "r1", 1)
		assert.False(t, granted)
	}

	// one instance frees up: only the earliest waiter is promoted
	assert.NoError(t, reg.Release(ctx, "holder", "r1", 1))
	snap := reg.Snapshot()
	assert.Equal(t, 1, snap.Held("pa", "r1"))
	assert.Equal(t, model.StatusRunning, snap.Processes["pa"].Status)
	assert.Equal(t, model.StatusWaiting, snap.Processes["pb"].Status)
	assert.Equal(t, model.StatusWaiting, snap.Processes["pc"].Status)

	assert.NoError(t, reg.Release(ctx, "pa", "r1", 1))
	snap = reg.Snapshot()
	assert.Equal(t, 1, snap.Held("pb", "r1"))
	assert.Equal(t, model.StatusWaiting, snap.Processes["pc"].Status)
}

func TestService_FIFOStopsAtFirstUnsatisfiable(t *testing.T) {
	ctx := context.Background()
	reg := New()
	for _, id := range []string{"holder", "big", "small"} {
		assert.NoError(t, reg.RegisterProcess(ctx, id))
	}
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 3))

	_, _ = reg.Request(ctx, "holder", "r1", 3)
	_, _ = reg.Request(ctx, "big", "r1", 2)   // queued first
	_, _ = reg.Request(ctx, "small", "r1", 1) // queued second

	// one instance covers "small" but not "big"; strict FIFO promotes neither
	assert.NoError(t, reg.Release(ctx, "holder", "r1", 1))
	snap := reg.Snapshot()
	assert.Equal(t, 1, snap.Resources["r1"].Available)
	assert.Equal(t, model.StatusWaiting, snap.Processes["big"].Status)
	assert.Equal(t, model.StatusWaiting, snap.Processes["small"].Status)

	assert.NoError(t, reg.Release(ctx, "holder", "r1", 1))
	snap = reg.Snapshot()
	assert.Equal(t, 2, snap.Held("big", "r1"))
	assert.Equal(t, model.StatusWaiting, snap.Processes["small"].Status)
}

func TestService_Conservation(t *testing.T) {
	ctx := context.Background()
	reg := New()
	for _, id := range []string{"p1", "p2", "p3"} {
		assert.NoError(t, reg.RegisterProcess(ctx, id))
	}
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 5))

	_, _ = reg.Request(ctx, "p1", "r1", 2)
	_, _ = reg.Request(ctx, "p2", "r1", 2)
	_, _ = reg.Request(ctx, "p3", "r1", 3)
	assert.NoError(t, reg.Release(ctx, "p1", "r1", 1))
	assert.NoError(t, reg.Terminate(ctx, "p2"))

	snap := reg.Snapshot()
	held := 0
	for _, a := range snap.Allocations {
		held += a.Count
	}
	assert.Equal(t, snap.Resources["r1"].Total, held+snap.Resources["r1"].Available)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	_, _ = reg.Request(ctx, "p1", "r1", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)

	assert.NoError(t, reg.Cancel(ctx, "p2", "r1"))
	snap := reg.Snapshot()
	assert.Equal(t, model.StatusRunning, snap.Processes["p2"].Status)
	assert.Empty(t, snap.RequestsBy("p2"))

	err := reg.Cancel(ctx, "p2", "r1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Preempt(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	_, _ = reg.Request(ctx, "p1", "r1", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)

	assert.NoError(t, reg.Preempt(ctx, "r1", "p1", 1))
	snap := reg.Snapshot()
	// the freed instance goes to the earlier waiter; the victim now queues
	assert.Equal(t, 1, snap.Held("p2", "r1"))
	assert.Equal(t, model.StatusWaiting, snap.Processes["p1"].Status)
	assert.Len(t, snap.RequestsBy("p1"), 1)
}

func TestService_Terminate(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterProcess(ctx, "p2"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 2))
	assert.NoError(t, reg.RegisterResource(ctx, "r2", 1))

	_, _ = reg.Request(ctx, "p1", "r1", 2)
	_, _ = reg.Request(ctx, "p1", "r2", 1)
	_, _ = reg.Request(ctx, "p2", "r1", 1)

	assert.NoError(t, reg.Terminate(ctx, "p1"))
	snap := reg.Snapshot()
	_, ok := snap.Processes["p1"]
	assert.False(t, ok)
	assert.Equal(t, 1, snap.Held("p2", "r1"))
	assert.Equal(t, 1, snap.Resources["r1"].Available)
	assert.Equal(t, 1, snap.Resources["r2"].Available)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	assert.ErrorIs(t, reg.RegisterProcess(ctx, "p1"), ErrDuplicateID)
	assert.ErrorIs(t, reg.RegisterResource(ctx, "r1", 1), ErrDuplicateID)
	assert.ErrorIs(t, reg.RegisterResource(ctx, "r2", 0), ErrInvalidArgument)

	_, err := reg.Request(ctx, "ghost", "r1", 1)
	assert.ErrorIs(t, err, ErrUnknownEntity)
	_, err = reg.Request(ctx, "p1", "ghost", 1)
	assert.ErrorIs(t, err, ErrUnknownEntity)
	_, err = reg.Request(ctx, "p1", "r1", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.ErrorIs(t, reg.Release(ctx, "p1", "r1", 1), ErrInvalidState)
	_, _ = reg.Request(ctx, "p1", "r1", 1)
	assert.ErrorIs(t, reg.Release(ctx, "p1", "r1", 2), ErrInvalidState)

	assert.ErrorIs(t, reg.Preempt(ctx, "r1", "p1", 2), ErrInvalidState)
	assert.ErrorIs(t, reg.Terminate(ctx, "ghost"), ErrUnknownEntity)
}

func TestService_DeregisterProcess(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	_, _ = reg.Request(ctx, "p1", "r1", 1)
	assert.ErrorIs(t, reg.DeregisterProcess(ctx, "p1"), ErrInvalidState)
	assert.NoError(t, reg.Release(ctx, "p1", "r1", 1))
	assert.NoError(t, reg.DeregisterProcess(ctx, "p1"))
	assert.ErrorIs(t, reg.DeregisterProcess(ctx, "p1"), ErrUnknownEntity)
}

func TestService_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	reg := New()
	assert.NoError(t, reg.RegisterProcess(ctx, "p1"))
	assert.NoError(t, reg.RegisterResource(ctx, "r1", 1))

	before := reg.Snapshot()
	_, _ = reg.Request(ctx, "p1", "r1", 1)
	assert.Equal(t, 1, before.Resources["r1"].Available)
	assert.Empty(t, before.Allocations)
}
