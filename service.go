package gridlock

import (
	"github.com/viant/afs/storage"

	"github.com/gridlock/gridlock/policy"
	"github.com/gridlock/gridlock/service/event"
	"github.com/gridlock/gridlock/service/messaging"
	mmemory "github.com/gridlock/gridlock/service/messaging/memory"
	"github.com/gridlock/gridlock/service/monitor"
	"github.com/gridlock/gridlock/service/registry"
	"github.com/gridlock/gridlock/service/resolver"
	"github.com/gridlock/gridlock/service/scenario"
)

type Service struct {
	runtime           *Runtime
	policy            *policy.Policy
	queue             messaging.Queue[monitor.Command]
	monitorConfig     *monitor.Config
	scenarioBaseURL   string
	scenarioFsOptions []storage.Option
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	var resolverOptions []resolver.Option
	if s.policy != nil {
		resolverOptions = append(resolverOptions, resolver.WithPolicy(s.policy))
	}
	s.runtime.resolver = resolver.New(s.runtime.registry, resolverOptions...)
	s.runtime.monitor = monitor.New(s.runtime.registry, s.queue, s.runtime.events, *s.monitorConfig)
}

func (s *Service) ensureBaseSetup() {
	if s.runtime.registry == nil {
		s.runtime.registry = registry.New()
	}
	if s.runtime.events == nil {
		s.runtime.events = event.New()
	}
	if s.queue == nil {
		s.queue = mmemory.NewQueue[monitor.Command](mmemory.DefaultConfig())
	}
	if s.monitorConfig == nil {
		config := monitor.DefaultConfig()
		s.monitorConfig = &config
	}
	if s.runtime.scenarios == nil {
		var scenarioOptions []scenario.Option
		if s.scenarioBaseURL != "" {
			scenarioOptions = append(scenarioOptions, scenario.WithBaseURL(s.scenarioBaseURL))
		}
		if len(s.scenarioFsOptions) > 0 {
			scenarioOptions = append(scenarioOptions, scenario.WithFsOptions(s.scenarioFsOptions...))
		}
		s.runtime.scenarios = scenario.New(scenarioOptions...)
	}
}

// Runtime returns the engine runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// New creates a gridlock service with the supplied options.
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}}
	ret.init(options)
	return ret
}

// NewFromConfig creates a gridlock service from a declarative configuration.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config != nil {
		options = append([]Option{WithMonitorConfig(config.Monitor.Config())}, options...)
	}
	return New(options...), nil
}
