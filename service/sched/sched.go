package sched

import "sort"

// Entry describes one process handed to a scheduler simulation.
type Entry struct {
	Process  string `json:"process" yaml:"process"`
	Burst    int    `json:"burst" yaml:"burst"`
	Arrival  int    `json:"arrival,omitempty" yaml:"arrival,omitempty"`
	Priority int    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Step records one time unit of a simulation run.
type Step struct {
	Time      int      `json:"time"`
	Running   string   `json:"running"`
	Ready     []string `json:"ready"`
	Completed []string `json:"completed"`
}

// History is the ordered step trace of one simulation run.
type History []*Step

// WaitingTimes derives per-process waiting time (time spent ready but not
// running after arrival) from the trace.
func (h History) WaitingTimes() map[string]int {
	out := make(map[string]int)
	for _, step := range h {
		for _, id := range step.Ready {
			out[id]++
		}
	}
	return out
}

// Scheduler simulates an execution order for the supplied entries.  The
// simulation is purely advisory; it never touches the resource model.
type Scheduler interface {
	Name() string
	Simulate(entries []Entry) History
}

type job struct {
	Entry
	remaining int
	done      bool
}

// prepare clones entries into jobs ordered by arrival, ties by process id.
func prepare(entries []Entry) []*job {
	jobs := make([]*job, 0, len(entries))
	for _, entry := range entries {
		burst := entry.Burst
		if burst <= 0 {
			burst = 1
		}
		jobs = append(jobs, &job{Entry: entry, remaining: burst})
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].Arrival != jobs[j].Arrival {
			return jobs[i].Arrival < jobs[j].Arrival
		}
		return jobs[i].Process < jobs[j].Process
	})
	return jobs
}

func arrived(jobs []*job, now int) []*job {
	var out []*job
	for _, j := range jobs {
		if !j.done && j.Arrival <= now {
			out = append(out, j)
		}
	}
	return out
}

func record(h History, now int, running *job, jobs []*job) History {
	step := &Step{Time: now}
	if running != nil {
		step.Running = running.Process
	}
	for _, j := range jobs {
		switch {
		case j.done:
			step.Completed = append(step.Completed, j.Process)
		case j != running && j.Arrival <= now:
			step.Ready = append(step.Ready, j.Process)
		}
	}
	return append(h, step)
}

func allDone(jobs []*job) bool {
	for _, j := range jobs {
		if !j.done {
			return false
		}
	}
	return true
}
