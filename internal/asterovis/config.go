package asterovis

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// BodyCfg describes a secondary body for eclipse shadowing: its shape model
// and its pose relative to the primary body's frame.
type BodyCfg struct {
	Shape       string  `yaml:"shape"`
	Position    [3]Real `yaml:"position"`
	RotationDeg [3]Real `yaml:"rotation_deg"`
}

// LoggingCfg holds logging settings.
type LoggingCfg struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Config describes one analysis job.
type Config struct {
	Shape              string     `yaml:"shape"`
	SunDirection       [3]Real    `yaml:"sun_direction"`
	Mode               string     `yaml:"mode"` // "pseudo_convex" or "self_shadowing"
	ElevationMarginDeg Real       `yaml:"elevation_margin_deg"`
	Output             string     `yaml:"output"`
	Secondary          *BodyCfg   `yaml:"secondary"`
	Logging            LoggingCfg `yaml:"logging"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Mode:               "self_shadowing",
		ElevationMarginDeg: DefaultElevationMargin * 180 / math.Pi,
		Logging:            LoggingCfg{Level: "info"},
	}
}

// LoadConfig reads a YAML job description, merging it over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Shape == "" {
		return fmt.Errorf("shape path is required")
	}
	switch c.Mode {
	case "pseudo_convex", "self_shadowing":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	s := Vector3{c.SunDirection[0], c.SunDirection[1], c.SunDirection[2]}
	if s.Dot(s) < epsLen2 {
		return fmt.Errorf("sun_direction must be non-zero")
	}
	if c.Secondary != nil && c.Secondary.Shape == "" {
		return fmt.Errorf("secondary.shape path is required")
	}
	return nil
}
