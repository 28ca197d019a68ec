package scenario

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// ErrUnknownScenario is returned when looking up a scenario name that was
// never registered or loaded.
var ErrUnknownScenario = errors.New("scenario: unknown scenario")

// Service holds the ordered scenario catalog.  It ships with the built-in
// configurations and can load further definitions from YAML documents via
// the abstract file system (file, embed, mem and cloud schemes).
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
	mux       sync.RWMutex
	catalog   map[string]*Definition
	order     []string
}

// Option customises the scenario service.
type Option func(s *Service)

// WithBaseURL sets the base URL resolved against relative scenario
// locations.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) { s.baseURL = baseURL }
}

// WithFsOptions sets abstract file system options (e.g. an embedded FS).
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.fsOptions = options }
}

// New creates a scenario service pre-populated with the built-in catalog.
func New(options ...Option) *Service {
	ret := &Service{
		fs:      afs.New(),
		catalog: make(map[string]*Definition),
	}
	for _, option := range options {
		option(ret)
	}
	for _, def := range builtins() {
		ret.Register(def)
	}
	return ret
}

// Register adds (or replaces) a definition in the catalog, preserving first
// registration order.
func (s *Service) Register(def *Definition) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.catalog[def.Name]; !ok {
		s.order = append(s.order, def.Name)
	}
	s.catalog[def.Name] = def
}

// Scenarios returns the catalog in registration order.  Each call returns a
// fresh slice, so iteration is restartable.
func (s *Service) Scenarios() []*Definition {
	s.mux.RLock()
	defer s.mux.RUnlock()
	out := make([]*Definition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.catalog[name])
	}
	return out
}

// Lookup returns the named definition.
func (s *Service) Lookup(name string) (*Definition, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	def, ok := s.catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return def, nil
}

// Load reads a scenario definition from YAML at the supplied location,
// registers it and returns it.  Relative locations resolve against the
// configured base URL.
func (s *Service) Load(ctx context.Context, location string) (*Definition, error) {
	if filepath.Ext(location) == "" {
		location += ".yaml"
	}
	URL := location
	if s.baseURL != "" {
		URL = url.Join(s.baseURL, location)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario from %s: %w", URL, err)
	}
	def, err := s.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario from %s: %w", URL, err)
	}
	if def.Name == "" {
		base := filepath.Base(location)
		def.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	s.Register(def)
	return def, nil
}
