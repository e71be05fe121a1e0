package vehicle

import "github.com/Chenchunxuan/qbit-simulator/internal/dynamo"

// State is the planar rigid-body state. Theta is pitch measured so that
// hover is pi/2 and wing-borne level flight approaches 0. Angles are raw
// radians and are never wrapped.
type State struct {
	Y     float64 // horizontal position, m
	Z     float64 // vertical position, m
	Theta float64 // pitch, rad
	VY    float64 // m/s
	VZ    float64 // m/s
	Omega float64 // pitch rate, rad/s
}

// Thrust is one per-rotor command pair. Commands are not clamped; actuator
// saturation is a policy for callers.
type Thrust struct {
	Top    float64
	Bottom float64
}

// Total returns the summed thrust magnitude along the body axis.
func (t Thrust) Total() float64 {
	return t.Top + t.Bottom
}

// Vector flattens the state for the generic integrator interface.
func (s State) Vector() dynamo.State {
	return dynamo.State{s.Y, s.Z, s.Theta, s.VY, s.VZ, s.Omega}
}

// StateFromVector rebuilds a typed state from an integrator vector.
func StateFromVector(x dynamo.State) State {
	return State{Y: x[0], Z: x[1], Theta: x[2], VY: x[3], VZ: x[4], Omega: x[5]}
}
