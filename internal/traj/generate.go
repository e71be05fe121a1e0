package traj

import (
	"fmt"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/trim"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// AlphaShape selects the prescribed angle-of-attack decay profile.
type AlphaShape int

const (
	AlphaParabolic AlphaShape = iota
	AlphaExponential
)

// Input carries everything a generator may need. Maneuvers read only the
// fields they document.
type Input struct {
	Maneuver Maneuver
	N        int     // number of samples on the uniform grid
	Dt       float64 // s

	Params vehicle.Params
	Model  *aero.CoefficientModel

	CruiseSpeed float64       // m/s, target for cruise/ramps/transition
	Trim        trim.Solution // equilibrium boundary condition where needed

	// maneuver scalars
	StepMagnitude  float64      // step probes: offset applied to the initial condition
	Accel          float64      // ramps: constant acceleration magnitude, m/s^2
	Buffer         float64      // ramps: settling time after the ramp, s
	Waypoints      [][2]float64 // waypoint spline: (y, z) knots
	AlphaShape     AlphaShape
	TransitionTime float64 // prescribed alpha: natural duration, s
	TerminalAlpha  float64 // prescribed alpha: terminal angle, rad
	IncludeAccel   bool    // prescribed alpha: acceleration-inclusive references
}

// Generate maps a maneuver tag to its trajectory. The mapping is total over
// the Maneuver set; anything else is a configuration error.
func Generate(in Input) (*Plan, error) {
	if in.N < 2 || in.Dt <= 0 {
		return nil, fmt.Errorf("%w: need at least 2 samples and dt > 0", dynamo.ErrBadConfig)
	}

	switch in.Maneuver {
	case Cruise:
		return genCruise(in), nil
	case Waypoints:
		return genWaypoints(in)
	case AccelRamp:
		return genAccelRamp(in)
	case DecelRamp:
		return genDecelRamp(in)
	case AlphaTransition:
		return genAlphaTransition(in)
	case StepPosition, StepPitch, StepAirspeed, StepPitchForward:
		return genStep(in)
	default:
		return nil, fmt.Errorf("%w: tag %d", dynamo.ErrUnknownManeuver, int(in.Maneuver))
	}
}
