package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
)

const (
	DefaultScenario    = "well"
	DefaultSampleEvery = 1
	DefaultOutputDir   = "runs"
)

// Config selects a scenario and overrides its tuned defaults. Zero
// numeric fields and empty names defer to the scenario.
type Config struct {
	Scenario    string   `yaml:"scenario"`
	Propagator  string   `yaml:"propagator"`
	Boundary    string   `yaml:"boundary"`
	Dt          float64  `yaml:"dt"`
	Order       int      `yaml:"order"`
	Steps       int      `yaml:"steps"`
	SampleEvery int      `yaml:"sample_every"`
	Renormalize bool     `yaml:"renormalize"`
	KeepStates  bool     `yaml:"keep_states"`
	Probes      []string `yaml:"probes"`
	OutputDir   string   `yaml:"output_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    DefaultScenario,
		SampleEvery: DefaultSampleEvery,
		Renormalize: true,
		Probes:      []string{"norm", "energy"},
		OutputDir:   DefaultOutputDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("scenario must be set: %w", quantum.ErrInvalidConfig)
	}
	if c.Dt < 0 {
		return fmt.Errorf("dt must not be negative, got %g: %w", c.Dt, quantum.ErrInvalidConfig)
	}
	if c.Order < 0 {
		return fmt.Errorf("order must not be negative, got %d: %w", c.Order, quantum.ErrInvalidConfig)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d: %w", c.Steps, quantum.ErrInvalidConfig)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample_every must not be negative, got %d: %w", c.SampleEvery, quantum.ErrInvalidConfig)
	}
	return nil
}

// Resolved merges the config over a scenario's defaults: set fields
// win, unset fields keep what the scenario was tuned with.
func (c *Config) Resolved(d scenarios.Defaults) scenarios.Defaults {
	out := d
	if c.Dt > 0 {
		out.Dt = c.Dt
	}
	if c.Order > 0 {
		out.Order = c.Order
	}
	if c.Propagator != "" {
		out.Propagator = c.Propagator
	}
	if c.Boundary != "" {
		out.Boundary = c.Boundary
	}
	if c.Steps > 0 {
		out.Steps = c.Steps
	}
	return out
}

// RunConfig assembles the simulator configuration from resolved
// scenario defaults.
func (c *Config) RunConfig(d scenarios.Defaults) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = d.Dt
	cfg.Steps = d.Steps
	cfg.SampleEvery = c.SampleEvery
	cfg.Renormalize = c.Renormalize
	cfg.KeepStates = c.KeepStates
	return cfg
}
