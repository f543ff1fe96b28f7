package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/pinn/internal/collocation"
)

const (
	DefaultBatch     = 4
	DefaultTimeSteps = 101
	DefaultCells     = 128
	DefaultPoints    = 64
	DefaultInterior  = 256
	DefaultNu        = 0.01
	DefaultSeed      = 42
)

// DefaultLayers is the MLP used when none is configured: (x, t) -> 3×32 tanh -> u.
var DefaultLayers = []int{2, 32, 32, 32, 1}

type Config struct {
	Sampler SamplerConfig `yaml:"sampler"`
	Nu      float64       `yaml:"nu"`
	Layers  []int         `yaml:"layers"`
	Seed    int64         `yaml:"seed"`
}

type SamplerConfig struct {
	Batch     int `yaml:"batch"`
	TimeSteps int `yaml:"time_steps"`
	Cells     int `yaml:"cells"`
	Points    int `yaml:"points"`
	Interior  int `yaml:"interior"`
}

func DefaultConfig() *Config {
	return &Config{
		Sampler: SamplerConfig{
			Batch:     DefaultBatch,
			TimeSteps: DefaultTimeSteps,
			Cells:     DefaultCells,
			Points:    DefaultPoints,
			Interior:  DefaultInterior,
		},
		Nu:     DefaultNu,
		Layers: append([]int(nil), DefaultLayers...),
		Seed:   DefaultSeed,
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SamplerConfig converts the sampler section for collocation.NewSampler.
func (c *Config) SamplerConfig() collocation.SamplerConfig {
	return collocation.SamplerConfig{
		Batch:     c.Sampler.Batch,
		TimeSteps: c.Sampler.TimeSteps,
		Cells:     c.Sampler.Cells,
		Points:    c.Sampler.Points,
		Interior:  c.Sampler.Interior,
		Seed:      c.Seed,
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if err := c.SamplerConfig().Validate(); err != nil {
		return err
	}
	if c.Nu < 0 {
		return fmt.Errorf("nu must be non-negative, got %g", c.Nu)
	}
	if len(c.Layers) < 2 {
		return errors.New("layers must list at least input and output sizes")
	}
	if c.Layers[0] != 2 || c.Layers[len(c.Layers)-1] != 1 {
		return fmt.Errorf("layers must map (x, t) to u: want [2 ... 1], got %v", c.Layers)
	}
	return nil
}
