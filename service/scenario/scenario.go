package scenario

import (
	"context"
	"fmt"

	"github.com/gridlock/gridlock/service/registry"
)

// OpKind identifies one replayable operation of a scenario.
type OpKind string

const (
	OpRegisterProcess  OpKind = "registerProcess"
	OpRegisterResource OpKind = "registerResource"
	OpRequest          OpKind = "request"
	OpRelease          OpKind = "release"
	OpCancel           OpKind = "cancel"
)

// Op is a single declarative operation replayed against a fresh resource
// model.
type Op struct {
	Kind     OpKind `json:"op" yaml:"op"`
	Process  string `json:"process,omitempty" yaml:"process,omitempty"`
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Count    int    `json:"count,omitempty" yaml:"count,omitempty"`
	Total    int    `json:"total,omitempty" yaml:"total,omitempty"`
	Priority int    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Definition is a named, finite configuration: a list of register/request
// operations that reproduce a particular allocation state, deadlocked or
// safe.
type Definition struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Ops         []*Op  `json:"ops" yaml:"ops"`
}

// Replay resets the supplied resource model and applies the definition's
// operations in order.
func (d *Definition) Replay(ctx context.Context, reg *registry.Service) error {
	reg.Reset()
	for i, op := range d.Ops {
		if err := apply(ctx, reg, op); err != nil {
			return fmt.Errorf("scenario %q: op %d (%s): %w", d.Name, i, op.Kind, err)
		}
	}
	return nil
}

func apply(ctx context.Context, reg *registry.Service, op *Op) error {
	switch op.Kind {
	case OpRegisterProcess:
		var options []registry.ProcessOption
		if op.Priority != 0 {
			options = append(options, registry.WithPriority(op.Priority))
		}
		return reg.RegisterProcess(ctx, op.Process, options...)
	case OpRegisterResource:
		return reg.RegisterResource(ctx, op.Resource, op.Total)
	case OpRequest:
		_, err := reg.Request(ctx, op.Process, op.Resource, op.Count)
		return err
	case OpRelease:
		return reg.Release(ctx, op.Process, op.Resource, op.Count)
	case OpCancel:
		return reg.Cancel(ctx, op.Process, op.Resource)
	}
	return fmt.Errorf("unsupported op kind: %s", op.Kind)
}
