package gridlock

import (
	"fmt"
	"time"

	"github.com/gridlock/gridlock/service/monitor"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON, YAML, environment variables, etc. The zero-value is
// useful – all nested fields inherit their package defaults.

type Config struct {
	Monitor MonitorConfig `json:"monitor" yaml:"monitor"`
}

type MonitorConfig struct {
	// SweepIntervalMs is the period of the background detection sweep in
	// milliseconds; zero disables periodic sweeps.
	SweepIntervalMs int `json:"sweepIntervalMs" yaml:"sweepIntervalMs"`
}

// Config converts the serialisable form into the monitor configuration.
func (c MonitorConfig) Config() monitor.Config {
	return monitor.Config{SweepInterval: time.Duration(c.SweepIntervalMs) * time.Millisecond}
}

// DefaultConfig returns a Config populated with the same default values the
// constructors use. Callers may modify the returned struct before passing it
// to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Monitor: MonitorConfig{
			SweepIntervalMs: int(monitor.DefaultConfig().SweepInterval / time.Millisecond),
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Monitor.SweepIntervalMs < 0 {
		return fmt.Errorf("monitor.sweepIntervalMs must be >= 0")
	}
	return nil
}
