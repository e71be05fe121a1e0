package vehicle

import (
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
)

// Dynamics is the closed-form rigid-body derivative function for one step.
// The flow state is evaluated once per step and held fixed across all
// integrator stages; only the state itself varies within a step.
type Dynamics struct {
	P    Params
	Flow FlowState
}

func NewDynamics(p Params, flow FlowState) *Dynamics {
	return &Dynamics{P: p, Flow: flow}
}

func (d *Dynamics) StateDim() int   { return 6 }
func (d *Dynamics) ControlDim() int { return 2 }

// Derive implements the planar equations of motion. x is
// (y, z, theta, vy, vz, omega), u is (T_top, T_bottom).
func (d *Dynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	theta, vy, vz, omega := x[2], x[3], x[4], x[5]
	tTop, tBot := u[0], u[1]

	thrust := tTop + tBot
	lift, drag, moment := d.Flow.Lift, d.Flow.Drag, d.Flow.Moment
	wind := theta - d.Flow.AlphaEff // direction of the effective relative wind

	sinT, cosT := math.Sin(theta), math.Cos(theta)
	sinW, cosW := math.Sin(wind), math.Cos(wind)

	ay := (thrust*cosT - drag*cosW - lift*sinW) / d.P.Mass
	az := (-d.P.Weight() + thrust*sinT - drag*sinW + lift*cosW) / d.P.Mass
	alpha := (moment + d.P.ArmLength*(tBot-tTop)) / d.P.Inertia

	return dynamo.State{vy, vz, omega, ay, az, alpha}
}

// Energy returns kinetic plus potential energy, used by run metrics.
func (d *Dynamics) Energy(x dynamo.State) float64 {
	z, vy, vz, omega := x[1], x[3], x[4], x[5]
	ke := 0.5 * d.P.Mass * (vy*vy + vz*vz)
	keRot := 0.5 * d.P.Inertia * omega * omega
	pe := d.P.Weight() * z
	return ke + keRot + pe
}
