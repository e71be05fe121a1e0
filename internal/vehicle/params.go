// Package vehicle models the QBiT tail-sitter: physical parameters, the
// per-step airflow and aero force computation, and the planar rigid-body
// derivative function.
package vehicle

import "math"

// Params is the immutable physical parameter set, fixed at configuration
// time and never mutated during a run.
type Params struct {
	Mass       float64 `yaml:"mass"`        // kg
	Gravity    float64 `yaml:"gravity"`     // m/s^2
	Inertia    float64 `yaml:"inertia"`     // kg*m^2, pitch axis
	Chord      float64 `yaml:"chord"`       // m
	Span       float64 `yaml:"span"`        // m
	PropRadius float64 `yaml:"prop_radius"` // m
	ArmLength  float64 `yaml:"arm_length"`  // m, thrust moment arm about the pitch axis
	AirDensity float64 `yaml:"air_density"` // kg/m^3
	WashEta    float64 `yaml:"wash_eta"`    // downwash efficiency, dimensionless
}

// DefaultParams returns the measured QBiT prototype values.
func DefaultParams() Params {
	return Params{
		Mass:       0.8652,
		Gravity:    9.81,
		Inertia:    0.00978,
		Chord:      0.087,
		Span:       1.016,
		PropRadius: 0.127,
		ArmLength:  0.244,
		AirDensity: 1.2,
		WashEta:    0.85,
	}
}

// WingArea returns the reference wing area chord*span.
func (p Params) WingArea() float64 {
	return p.Chord * p.Span
}

// DiskArea returns one propeller's disk area.
func (p Params) DiskArea() float64 {
	return math.Pi * p.PropRadius * p.PropRadius
}

// Weight returns m*g.
func (p Params) Weight() float64 {
	return p.Mass * p.Gravity
}

// HoverThrust returns the per-rotor thrust that cancels weight.
func (p Params) HoverThrust() float64 {
	return p.Weight() / 2.0
}
