package traj

import "github.com/Chenchunxuan/qbit-simulator/internal/vehicle"

// Reference is the desired state at one time sample: position, velocity and
// acceleration in the inertial plane.
type Reference struct {
	Y, Z   float64
	VY, VZ float64
	AY, AZ float64
}

// Plan is a generated maneuver: references index-aligned with the
// simulation time grid, plus the initial state and thrust seed. Immutable
// once generated.
type Plan struct {
	Refs    []Reference
	X0      vehicle.State
	Thrust0 vehicle.Thrust
	// Duration is the maneuver's natural end; references past it hold
	// their terminal value.
	Duration float64
}

// grid allocates the reference array for an N-sample uniform time grid.
func grid(n int) []Reference {
	return make([]Reference, n)
}
