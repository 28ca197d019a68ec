package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runningOrder(h History) []string {
	var out []string
	for _, step := range h {
		if len(out) == 0 || out[len(out)-1] != step.Running {
			out = append(out, step.Running)
		}
	}
	return out
}

func TestFCFS(t *testing.T) {
	entries := []Entry{
		{Process: "p2", Burst: 2, Arrival: 1},
		{Process: "p1", Burst: 2, Arrival: 0},
		{Process: "p3", Burst: 1, Arrival: 1},
	}
	history := FCFS{}.Simulate(entries)
	assert.Len(t, history, 5)
	assert.Equal(t, []string{"p1", "p2", "p3"}, runningOrder(history))
	assert.Equal(t, "fcfs", FCFS{}.Name())
}

func TestFCFS_IdleGap(t *testing.T) {
	entries := []Entry{
		{Process: "p1", Burst: 1, Arrival: 0},
		{Process: "p2", Burst: 1, Arrival: 3},
	}
	history := FCFS{}.Simulate(entries)
	assert.Len(t, history, 2)
	assert.Equal(t, 0, history[0].Time)
	assert.Equal(t, 3, history[1].Time)
}

func TestRoundRobin(t *testing.T) {
	entries := []Entry{
		{Process: "p1", Burst: 3},
		{Process: "p2", Burst: 3},
	}
	history := RoundRobin{Quantum: 2}.Simulate(entries)
	assert.Len(t, history, 6)
	assert.Equal(t, []string{"p1", "p2", "p1", "p2"}, runningOrder(history))
}

func TestRoundRobin_DefaultQuantum(t *testing.T) {
	history := RoundRobin{}.Simulate([]Entry{{Process: "p1", Burst: 1}})
	assert.Len(t, history, 1)
	assert.Equal(t, "p1", history[0].Running)
}

func TestSJF(t *testing.T) {
	entries := []Entry{
		{Process: "p1", Burst: 3},
		{Process: "p2", Burst: 1},
		{Process: "p3", Burst: 2},
	}
	history := SJF{}.Simulate(entries)
	assert.Equal(t, []string{"p2", "p3", "p1"}, runningOrder(history))
}

func TestPriority(t *testing.T) {
	entries := []Entry{
		{Process: "p1", Burst: 1, Priority: 2},
		{Process: "p2", Burst: 1, Priority: 0},
		{Process: "p3", Burst: 1, Priority: 1},
	}
	history := Priority{}.Simulate(entries)
	assert.Equal(t, []string{"p2", "p3", "p1"}, runningOrder(history))
}

func TestHistory_WaitingTimes(t *testing.T) {
	entries := []Entry{
		{Process: "p1", Burst: 2},
		{Process: "p2", Burst: 2},
	}
	history := FCFS{}.Simulate(entries)
	waits := history.WaitingTimes()
	assert.Equal(t, 0, waits["p1"])
	assert.Equal(t, 2, waits["p2"])
}

func TestPrepare_ZeroBurst(t *testing.T) {
	history := FCFS{}.Simulate([]Entry{{Process: "p1"}})
	assert.Len(t, history, 1)
}
