package traj

import (
	"fmt"
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// genAccelRamp accelerates from hover at a constant rate until the target
// speed, then holds that velocity through the settling buffer and beyond.
func genAccelRamp(in Input) (*Plan, error) {
	if in.Accel <= 0 {
		return nil, fmt.Errorf("%w: ramp acceleration must be positive", dynamo.ErrBadConfig)
	}

	vT := in.CruiseSpeed
	t1 := vT / in.Accel

	refs := grid(in.N)
	for i := range refs {
		t := float64(i) * in.Dt
		if t <= t1 {
			refs[i] = Reference{
				Y:  0.5 * in.Accel * t * t,
				VY: in.Accel * t,
				AY: in.Accel,
			}
		} else {
			refs[i] = Reference{
				Y:  0.5*in.Accel*t1*t1 + vT*(t-t1),
				VY: vT,
			}
		}
	}

	half := in.Params.HoverThrust()
	return &Plan{
		Refs:     refs,
		X0:       vehicle.State{Theta: math.Pi / 2},
		Thrust0:  vehicle.Thrust{Top: half, Bottom: half},
		Duration: t1 + in.Buffer,
	}, nil
}

// genDecelRamp starts in trimmed forward flight and decelerates at a
// constant rate to a stop; past the ramp the position reference freezes.
func genDecelRamp(in Input) (*Plan, error) {
	if in.Accel <= 0 {
		return nil, fmt.Errorf("%w: ramp acceleration must be positive", dynamo.ErrBadConfig)
	}

	v0 := in.CruiseSpeed
	t1 := v0 / in.Accel
	yStop := v0 * v0 / (2 * in.Accel)

	refs := grid(in.N)
	for i := range refs {
		t := float64(i) * in.Dt
		if t <= t1 {
			refs[i] = Reference{
				Y:  v0*t - 0.5*in.Accel*t*t,
				VY: v0 - in.Accel*t,
				AY: -in.Accel,
			}
		} else {
			refs[i] = Reference{Y: yStop}
		}
	}

	return &Plan{
		Refs:     refs,
		X0:       vehicle.State{Theta: in.Trim.Theta, VY: v0},
		Thrust0:  in.Trim.Thrust,
		Duration: t1 + in.Buffer,
	}, nil
}
