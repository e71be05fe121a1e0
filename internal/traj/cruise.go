package traj

import "github.com/Chenchunxuan/qbit-simulator/internal/vehicle"

// genCruise holds a constant-velocity straight line at the trim speed. The
// initial pitch and thrust are seeded from the trim solution.
func genCruise(in Input) *Plan {
	refs := grid(in.N)
	v := in.CruiseSpeed
	for i := range refs {
		t := float64(i) * in.Dt
		refs[i] = Reference{Y: v * t, VY: v}
	}

	return &Plan{
		Refs:     refs,
		X0:       vehicle.State{Theta: in.Trim.Theta, VY: v},
		Thrust0:  in.Trim.Thrust,
		Duration: float64(in.N-1) * in.Dt,
	}
}
