// Package sched provides simple scheduling simulations (FCFS, round-robin,
// shortest-job-first, priority) over registered processes.  The step traces
// they produce are advisory, intended for presentation collaborators that
// animate execution order alongside allocation state.
package sched
