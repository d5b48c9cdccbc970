package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sphstep/internal/steppers"
)

const (
	DefaultDt       = 5e-4
	DefaultDuration = 2.0
	DefaultCourant  = 0.5
	DefaultStride   = 10
	DefaultSpacing  = 0.05
	DefaultNX       = 20
	DefaultNY       = 20
	DefaultSeed     = 42
	DefaultMinDt    = 1e-6
	DefaultMaxDt    = 1e-2
	DefaultDataDir  = "data"
)

type Config struct {
	Scenario     string            `yaml:"scenario"`
	Dt           float64           `yaml:"dt"`
	Duration     float64           `yaml:"duration"`
	Courant      float64           `yaml:"courant"`
	Adaptive     bool              `yaml:"adaptive"`
	MinDt        float64           `yaml:"min_dt"`
	MaxDt        float64           `yaml:"max_dt"`
	Workers      int               `yaml:"workers"`
	SampleStride int               `yaml:"sample_stride"`
	Seed         int64             `yaml:"seed"`
	DataDir      string            `yaml:"data_dir"`
	Steppers     map[string]string `yaml:"steppers"`
	Particles    ParticlesConfig   `yaml:"particles"`
}

type ParticlesConfig struct {
	Spacing float64 `yaml:"spacing"`
	NX      int     `yaml:"nx"`
	NY      int     `yaml:"ny"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:     "dam_break",
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Courant:      DefaultCourant,
		MinDt:        DefaultMinDt,
		MaxDt:        DefaultMaxDt,
		SampleStride: DefaultStride,
		Seed:         DefaultSeed,
		DataDir:      DefaultDataDir,
		Particles: ParticlesConfig{
			Spacing: DefaultSpacing,
			NX:      DefaultNX,
			NY:      DefaultNY,
		},
	}
}

// Load reads a yaml file over the defaults, so partial files only
// override what they name.
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

// Validate rejects values the runner or scenario builders would choke
// on, including stepper names not in the registry.
func (c *Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("scenario must be set")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Courant <= 0 || c.Courant > 1 {
		return fmt.Errorf("courant must be in (0, 1], got %g", c.Courant)
	}
	if c.Adaptive {
		if c.MinDt <= 0 {
			return fmt.Errorf("min_dt must be positive for adaptive stepping, got %g", c.MinDt)
		}
		if c.MaxDt < c.MinDt {
			return fmt.Errorf("max_dt %g below min_dt %g", c.MaxDt, c.MinDt)
		}
	}
	if c.Particles.Spacing <= 0 {
		return fmt.Errorf("particle spacing must be positive, got %g", c.Particles.Spacing)
	}
	if c.Particles.NX <= 0 || c.Particles.NY <= 0 {
		return fmt.Errorf("particle counts must be positive, got %dx%d", c.Particles.NX, c.Particles.NY)
	}
	for group, name := range c.Steppers {
		if _, err := steppers.ByName(name); err != nil {
			return fmt.Errorf("group %s: %w", group, err)
		}
	}
	return nil
}
