// Package config loads, validates, and saves run configurations. Validation
// happens here, before anything is simulated: unknown maneuver and
// integrator names are configuration errors, not runtime ones.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Chenchunxuan/qbit-simulator/internal/control"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultSpeed    = 25.0
)

type Config struct {
	Maneuver    string  `yaml:"maneuver"`
	Integrator  string  `yaml:"integrator"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	CruiseSpeed float64 `yaml:"cruise_speed"`
	AeroEnabled bool    `yaml:"aero_enabled"`

	// maneuver-specific knobs; each maneuver reads only what it documents
	StepMagnitude  float64      `yaml:"step_magnitude"`
	Accel          float64      `yaml:"accel"`
	Buffer         float64      `yaml:"buffer"`
	Waypoints      [][2]float64 `yaml:"waypoints"`
	AlphaShape     string       `yaml:"alpha_shape"` // "parabolic" or "exponential"
	TransitionTime float64      `yaml:"transition_time"`
	TerminalAlpha  float64      `yaml:"terminal_alpha"` // rad
	IncludeAccel   bool         `yaml:"include_accel"`

	Gains   control.Gains  `yaml:"gains"`
	Vehicle vehicle.Params `yaml:"vehicle"`
}

func DefaultConfig() *Config {
	return &Config{
		Maneuver:    traj.Cruise.String(),
		Integrator:  "rk4",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		CruiseSpeed: DefaultSpeed,
		AeroEnabled: true,
		AlphaShape:  "parabolic",
		Gains:       control.DefaultGains(),
		Vehicle:     vehicle.DefaultParams(),
	}
}

// Load reads a YAML file over the defaults, then validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrBadConfig, err)
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

// Validate rejects anything the simulator would fail on later.
func (c *Config) Validate() error {
	if _, err := traj.ParseManeuver(c.Maneuver); err != nil {
		return err
	}
	switch c.Integrator {
	case "euler", "rk4":
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownIntegrator, c.Integrator)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrBadConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrBadConfig, c.Duration)
	}
	switch c.AlphaShape {
	case "", "parabolic", "exponential":
	default:
		return fmt.Errorf("%w: alpha shape %q", dynamo.ErrBadConfig, c.AlphaShape)
	}
	if c.Vehicle.Mass <= 0 || c.Vehicle.Inertia <= 0 {
		return fmt.Errorf("%w: vehicle mass and inertia must be positive", dynamo.ErrBadConfig)
	}
	return nil
}

// ParsedManeuver returns the maneuver tag. Call Validate first.
func (c *Config) ParsedManeuver() (traj.Maneuver, error) {
	return traj.ParseManeuver(c.Maneuver)
}

// ParsedAlphaShape maps the config string to its tag; empty means parabolic.
func (c *Config) ParsedAlphaShape() traj.AlphaShape {
	if c.AlphaShape == "exponential" {
		return traj.AlphaExponential
	}
	return traj.AlphaParabolic
}
