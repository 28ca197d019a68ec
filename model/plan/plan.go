package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/gridlock/gridlock/internal/clock"
	"github.com/gridlock/gridlock/internal/idgen"
)

// Kind identifies the type of a resolution action.
type Kind string

const (
	KindPreempt   Kind = "preempt"
	KindTerminate Kind = "terminate"
)

// Action is a single resolution step: either preempt instances of a resource
// from a process, or terminate the process releasing everything it holds.
type Action struct {
	Kind      Kind      `json:"kind"`
	Process   string    `json:"process"`
	Resource  string    `json:"resource,omitempty"`
	Count     int       `json:"count,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
}

func (a *Action) String() string {
	switch a.Kind {
	case KindPreempt:
		return fmt.Sprintf("preempt %d x %s from %s", a.Count, a.Resource, a.Process)
	case KindTerminate:
		return fmt.Sprintf("terminate %s", a.Process)
	}
	return string(a.Kind)
}

// Plan is the ordered list of actions computed and applied by the resolution
// engine for one resolve pass.  Plans are ephemeral: they are returned to the
// caller for display or replay and never persisted.
type Plan struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Actions   []*Action `json:"actions"`
}

// New returns an empty plan with a fresh identifier.
func New() *Plan {
	return &Plan{
		ID:        idgen.New(),
		CreatedAt: clock.Now(),
	}
}

// Preempt appends a preemption action and returns it.
func (p *Plan) Preempt(resource, process string, count int) *Action {
	action := &Action{
		Kind:      KindPreempt,
		Process:   process,
		Resource:  resource,
		Count:     count,
		AppliedAt: clock.Now(),
	}
	p.Actions = append(p.Actions, action)
	return action
}

// Terminate appends a termination action and returns it.
func (p *Plan) Terminate(process string) *Action {
	action := &Action{
		Kind:      KindTerminate,
		Process:   process,
		AppliedAt: clock.Now(),
	}
	p.Actions = append(p.Actions, action)
	return action
}

// Terminated returns identifiers of processes terminated by the plan.
func (p *Plan) Terminated() []string {
	var out []string
	for _, action := range p.Actions {
		if action.Kind == KindTerminate {
			out = append(out, action.Process)
		}
	}
	return out
}

func (p *Plan) String() string {
	steps := make([]string, 0, len(p.Actions))
	for _, action := range p.Actions {
		steps = append(steps, action.String())
	}
	return strings.Join(steps, "; ")
}
