package traj

import (
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// genStep builds the step-response probes. The reference is held constant
// for all time; the configured step is applied to the initial condition, so
// the closed loop is observed returning to the reference.
func genStep(in Input) (*Plan, error) {
	refs := grid(in.N)
	duration := float64(in.N-1) * in.Dt
	half := in.Params.HoverThrust()
	hover := vehicle.State{Theta: math.Pi / 2}
	hoverThrust := vehicle.Thrust{Top: half, Bottom: half}

	switch in.Maneuver {
	case StepPosition:
		x0 := hover
		x0.Z += in.StepMagnitude
		return &Plan{Refs: refs, X0: x0, Thrust0: hoverThrust, Duration: duration}, nil

	case StepPitch:
		x0 := hover
		x0.Theta += in.StepMagnitude
		return &Plan{Refs: refs, X0: x0, Thrust0: hoverThrust, Duration: duration}, nil

	case StepAirspeed:
		x0 := hover
		x0.VY += in.StepMagnitude
		return &Plan{Refs: refs, X0: x0, Thrust0: hoverThrust, Duration: duration}, nil

	default: // StepPitchForward
		// trimmed forward flight with a pitch offset; the reference is the
		// undisturbed cruise line
		plan := genCruise(in)
		plan.X0.Theta += in.StepMagnitude
		return plan, nil
	}
}
