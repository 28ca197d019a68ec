package gridlock

import (
	"log"

	"github.com/viant/afs/storage"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/gridlock/gridlock/policy"
	"github.com/gridlock/gridlock/service/event"
	"github.com/gridlock/gridlock/service/messaging"
	"github.com/gridlock/gridlock/service/monitor"
	"github.com/gridlock/gridlock/service/registry"
	"github.com/gridlock/gridlock/service/scenario"
	"github.com/gridlock/gridlock/tracing"
)

// Option configures the service.
type Option func(s *Service)

// WithPolicy overrides the victim-selection policy used by the resolver.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithRegistry supplies a pre-populated resource model.
func WithRegistry(reg *registry.Service) Option {
	return func(s *Service) {
		s.runtime.registry = reg
	}
}

// WithEventService supplies a shared event service.
func WithEventService(events *event.Service) Option {
	return func(s *Service) {
		s.runtime.events = events
	}
}

// WithCommandQueue overrides the ingestion queue used by the monitor.
func WithCommandQueue(queue messaging.Queue[monitor.Command]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithMonitorConfig overrides the monitor configuration.
func WithMonitorConfig(config monitor.Config) Option {
	return func(s *Service) {
		s.monitorConfig = &config
	}
}

// WithScenarioService supplies a pre-built scenario catalog.
func WithScenarioService(scenarios *scenario.Service) Option {
	return func(s *Service) {
		s.runtime.scenarios = scenarios
	}
}

// WithScenarioBaseURL sets the base location scenario files are loaded from.
func WithScenarioBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.scenarioBaseURL = baseURL
	}
}

// WithScenarioFsOptions sets storage options for scenario loading, i.e. an
// embedded filesystem.
func WithScenarioFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.scenarioFsOptions = options
	}
}

// WithTracing initialises OpenTelemetry with the stdout exporter writing to
// outputFile (os.Stdout when empty).
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			log.Printf("failed to initialise tracing: %v", err)
		}
	}
}

// WithTracingExporter initialises OpenTelemetry with the supplied span
// exporter (OTLP, Jaeger, Zipkin, ...).
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			log.Printf("failed to initialise tracing: %v", err)
		}
	}
}
