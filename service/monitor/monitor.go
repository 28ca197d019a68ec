package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gridlock/gridlock/model/graph"
	"github.com/gridlock/gridlock/progress"
	"github.com/gridlock/gridlock/service/builder"
	"github.com/gridlock/gridlock/service/detector"
	"github.com/gridlock/gridlock/service/event"
	"github.com/gridlock/gridlock/service/messaging"
	"github.com/gridlock/gridlock/service/registry"
)

// CommandKind identifies an ingestion command.
type CommandKind string

const (
	CommandRegisterProcess  CommandKind = "registerProcess"
	CommandRegisterResource CommandKind = "registerResource"
	CommandRequest          CommandKind = "request"
	CommandRelease          CommandKind = "release"
	CommandCancel           CommandKind = "cancel"
)

// Command is one allocation event submitted by a live collaborator.  Commands
// are applied to the resource model strictly in arrival order, one at a time.
type Command struct {
	Kind     CommandKind `json:"kind"`
	Process  string      `json:"process,omitempty"`
	Resource string      `json:"resource,omitempty"`
	Count    int         `json:"count,omitempty"`
	Total    int         `json:"total,omitempty"`
	Priority int         `json:"priority,omitempty"`
}

// Detection is the payload published after every periodic sweep.
type Detection struct {
	Cycles []*graph.Cycle `json:"cycles"`
}

// Config represents monitor service configuration.
type Config struct {
	// SweepInterval is how often the monitor re-runs deadlock detection over
	// the current snapshot; zero disables periodic sweeps.
	SweepInterval time.Duration
}

// DefaultConfig returns the default monitor configuration.
func DefaultConfig() Config {
	return Config{SweepInterval: 250 * time.Millisecond}
}

// Service consumes ingestion commands from a queue and applies them to the
// resource model in arrival order, optionally running a periodic detection
// sweep whose outcome is published as an event.
type Service struct {
	config     Config
	registry   *registry.Service
	detector   *detector.Service
	events     *event.Service
	queue      messaging.Queue[Command]
	shutdownCh chan struct{}
}

// New creates a monitor service.
func New(reg *registry.Service, queue messaging.Queue[Command], events *event.Service, config Config) *Service {
	return &Service{
		config:     config,
		registry:   reg,
		detector:   detector.New(),
		events:     events,
		queue:      queue,
		shutdownCh: make(chan struct{}),
	}
}

// Submit enqueues a command for serialized application.
func (s *Service) Submit(ctx context.Context, command Command) error {
	return s.queue.Publish(ctx, &command)
}

// Start runs the ingestion loop plus the sweep ticker until the context is
// cancelled or Shutdown is called.
func (s *Service) Start(ctx context.Context) error {
	go s.consume(ctx)
	if s.config.SweepInterval <= 0 {
		<-s.done(ctx)
		return ctx.Err()
	}
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.shutdownCh:
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Shutdown stops the monitor loops.
func (s *Service) Shutdown() {
	close(s.shutdownCh)
}

func (s *Service) done(ctx context.Context) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-s.shutdownCh:
		}
		close(out)
	}()
	return out
}

func (s *Service) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdownCh:
			return
		default:
		}
		msg, err := s.queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("error consuming command: %v", err)
			continue
		}
		command := msg.T()
		if err := s.apply(ctx, command); err != nil {
			// The failed mutation is a no-op on the model; surface it to the
			// queue so the collaborator may re-issue, never retry here.
			log.Printf("failed to apply %s command: %v", command.Kind, err)
			_ = msg.Nack(err)
			continue
		}
		_ = msg.Ack()
		progress.FromContext(ctx).Update(progress.Delta{Mutations: 1})
		s.publishMutation(ctx, command)
	}
}

func (s *Service) apply(ctx context.Context, command *Command) error {
	switch command.Kind {
	case CommandRegisterProcess:
		var options []registry.ProcessOption
		if command.Priority != 0 {
			options = append(options, registry.WithPriority(command.Priority))
		}
		return s.registry.RegisterProcess(ctx, command.Process, options...)
	case CommandRegisterResource:
		return s.registry.RegisterResource(ctx, command.Resource, command.Total)
	case CommandRequest:
		_, err := s.registry.Request(ctx, command.Process, command.Resource, command.Count)
		return err
	case CommandRelease:
		return s.registry.Release(ctx, command.Process, command.Resource, command.Count)
	case CommandCancel:
		return s.registry.Cancel(ctx, command.Process, command.Resource)
	}
	return fmt.Errorf("unsupported command kind: %s", command.Kind)
}

// sweep runs one detection pass over the current snapshot and publishes the
// outcome.
func (s *Service) sweep(ctx context.Context) {
	started := time.Now()
	snap := s.registry.Snapshot()
	cycles := s.detector.Detect(builder.Build(snap), snap)
	progress.FromContext(ctx).Update(progress.Delta{Detections: 1, CyclesFound: len(cycles)})
	if s.events == nil {
		return
	}
	publisher := event.PublisherOf[*Detection](s.events)
	eCtx := &event.Context{
		EventType:   "detection",
		TimeTakenMs: int(time.Since(started).Milliseconds()),
	}
	if err := publisher.Publish(ctx, event.NewEvent(eCtx, &Detection{Cycles: cycles})); err != nil {
		log.Printf("failed to publish detection event: %v", err)
	}
}

func (s *Service) publishMutation(ctx context.Context, command *Command) {
	if s.events == nil {
		return
	}
	publisher := event.PublisherOf[*Command](s.events)
	eCtx := &event.Context{
		EventType: string(command.Kind),
		Process:   command.Process,
		Resource:  command.Resource,
	}
	if err := publisher.Publish(ctx, event.NewEvent(eCtx, command)); err != nil {
		log.Printf("failed to publish mutation event: %v", err)
	}
}
