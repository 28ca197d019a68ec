package sched

import "sort"

// FCFS is a first-come, first-served scheduler.
type FCFS struct{}

func (FCFS) Name() string { return "fcfs" }

func (FCFS) Simulate(entries []Entry) History {
	jobs := prepare(entries)
	var history History
	now := 0
	var running *job
	for !allDone(jobs) {
		if running == nil {
			ready := arrived(jobs, now)
			if len(ready) == 0 {
				now++
				continue
			}
			running = ready[0]
		}
		running.remaining--
		history = record(history, now, running, jobs)
		if running.remaining == 0 {
			running.done = true
			running = nil
		}
		now++
	}
	return history
}

// RoundRobin cycles the ready queue with a fixed time quantum.
type RoundRobin struct {
	Quantum int
}

func (RoundRobin) Name() string { return "round-robin" }

func (r RoundRobin) Simulate(entries []Entry) History {
	quantum := r.Quantum
	if quantum <= 0 {
		quantum = 2
	}
	jobs := prepare(entries)
	var history History
	var queue []*job
	queued := make(map[*job]bool)
	now := 0
	enqueue := func() {
		for _, j := range arrived(jobs, now) {
			if !queued[j] {
				queue = append(queue, j)
				queued[j] = true
			}
		}
	}
	for !allDone(jobs) {
		enqueue()
		if len(queue) == 0 {
			now++
			continue
		}
		running := queue[0]
		queue = queue[1:]
		for slice := 0; slice < quantum && running.remaining > 0; slice++ {
			running.remaining--
			history = record(history, now, running, jobs)
			now++
			enqueue()
		}
		if running.remaining == 0 {
			running.done = true
			delete(queued, running)
		} else {
			queue = append(queue, running)
		}
	}
	return history
}

// SJF is a non-preemptive shortest-job-first scheduler.
type SJF struct{}

func (SJF) Name() string { return "sjf" }

func (SJF) Simulate(entries []Entry) History {
	jobs := prepare(entries)
	var history History
	now := 0
	for !allDone(jobs) {
		ready := arrived(jobs, now)
		if len(ready) == 0 {
			now++
			continue
		}
		sort.SliceStable(ready, func(i, j int) bool {
			if ready[i].remaining != ready[j].remaining {
				return ready[i].remaining < ready[j].remaining
			}
			return ready[i].Process < ready[j].Process
		})
		running := ready[0]
		for running.remaining > 0 {
			running.remaining--
			history = record(history, now, running, jobs)
			now++
		}
		running.done = true
	}
	return history
}

// Priority is a non-preemptive priority scheduler; lower value runs first.
type Priority struct{}

func (Priority) Name() string { return "priority" }

func (Priority) Simulate(entries []Entry) History {
	jobs := prepare(entries)
	var history History
	now := 0
	for !allDone(jobs) {
		ready := arrived(jobs, now)
		if len(ready) == 0 {
			now++
			continue
		}
		sort.SliceStable(ready, func(i, j int) bool {
			if ready[i].Priority != ready[j].Priority {
				return ready[i].Priority < ready[j].Priority
			}
			return ready[i].Process < ready[j].Process
		})
		running := ready[0]
		for running.remaining > 0 {
			running.remaining--
			history = record(history, now, running, jobs)
			now++
		}
		running.done = true
	}
	return history
}
