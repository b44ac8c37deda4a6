package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/sim"
)

const (
	DefaultSteps       = 1000
	DefaultRecordEvery = 1
	DefaultDataDir     = ".nbodysim"
	DefaultCheckEvery  = 4096
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid configuration")
)

type Config struct {
	Steps   int           `yaml:"steps"`
	Backend string        `yaml:"backend"`
	DataDir string        `yaml:"data_dir"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type OutputConfig struct {
	// Trajectory is an extra CSV path; stored runs always keep their own copy.
	Trajectory  string `yaml:"trajectory"`
	Record      bool   `yaml:"record"`
	RecordEvery int    `yaml:"record_every"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

func DefaultConfig() *Config {
	return &Config{
		Steps:   DefaultSteps,
		Backend: compute.DefaultBackend,
		DataDir: DefaultDataDir,
		Output: OutputConfig{
			Record:      true,
			RecordEvery: DefaultRecordEvery,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
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
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalid, c.Steps)
	}
	if c.Output.RecordEvery < 0 {
		return fmt.Errorf("%w: record_every must be non-negative, got %d", ErrInvalid, c.Output.RecordEvery)
	}
	if _, err := compute.Get(c.Backend); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SimConfig converts the file settings into a simulator configuration.
func (c *Config) SimConfig() sim.Config {
	every := c.Output.RecordEvery
	if every < 1 {
		every = 1
	}
	return sim.Config{
		Steps:       c.Steps,
		SampleEvery: every,
		CheckEvery:  DefaultCheckEvery,
	}
}
