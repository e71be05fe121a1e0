package traj

import (
	"fmt"
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// sinFloor keeps the vertical thrust balance defined as the body axis
// approaches level flight during the transition kinematics.
const sinFloor = 0.05

// alphaAt evaluates the prescribed angle-of-attack profile: a decay from
// hover (pi/2) to the terminal angle, parabolic or first-order exponential.
func alphaAt(in Input, t float64) float64 {
	a0 := math.Pi / 2
	aT := in.TerminalAlpha
	T := in.TransitionTime

	if t >= T {
		return aT
	}
	switch in.AlphaShape {
	case AlphaExponential:
		tau := T / 3
		return aT + (a0-aT)*math.Exp(-t/tau)
	default:
		frac := 1 - t/T
		return aT + (a0-aT)*frac*frac
	}
}

// genAlphaTransition builds a hover-to-forward-flight reference by forward
// integrating level-path kinematics under the prescribed alpha profile:
// pitch tracks alpha, thrust instantaneously balances the vertical channel,
// and the horizontal residual accelerates the vehicle. Downwash is ignored
// here; this is the trajectory approximation, not the plant. Past the
// natural end the velocity reference freezes.
func genAlphaTransition(in Input) (*Plan, error) {
	if in.TransitionTime <= 0 {
		return nil, fmt.Errorf("%w: transition time must be positive", dynamo.ErrBadConfig)
	}
	if in.TerminalAlpha <= 0 || in.TerminalAlpha >= math.Pi/2 {
		return nil, fmt.Errorf("%w: terminal alpha %.4f rad outside (0, pi/2)", dynamo.ErrBadConfig, in.TerminalAlpha)
	}

	p := in.Params
	qFactor := 0.5 * p.AirDensity * p.WingArea()

	refs := grid(in.N)
	y, v := 0.0, 0.0
	for i := range refs {
		t := float64(i) * in.Dt
		alpha := alphaAt(in, t)

		cl, cd, _ := in.Model.Evaluate(alpha * 180 / math.Pi)
		q := qFactor * v * v
		lift, drag := q*cl, q*cd

		// vertical balance picks the thrust, the horizontal residual
		// drives the speed
		thrust := (p.Weight() - lift) / math.Max(math.Sin(alpha), sinFloor)
		ay := (thrust*math.Cos(alpha) - drag) / p.Mass

		if t >= in.TransitionTime {
			// terminal angle reached: hold the velocity reference
			refs[i] = Reference{Y: y, VY: v}
			y += v * in.Dt
			continue
		}

		refAY := ay
		if !in.IncludeAccel {
			refAY = 0
		}
		refs[i] = Reference{Y: y, VY: v, AY: refAY}

		y += v*in.Dt + 0.5*ay*in.Dt*in.Dt
		v += ay * in.Dt
	}

	half := p.HoverThrust()
	return &Plan{
		Refs:     refs,
		X0:       vehicle.State{Theta: math.Pi / 2},
		Thrust0:  vehicle.Thrust{Top: half, Bottom: half},
		Duration: in.TransitionTime,
	}, nil
}
