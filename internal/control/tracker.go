// Package control maps tracking error and instantaneous aero state into the
// two QBiT thrust commands.
package control

import (
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// Gains is the PD tuning set: position/velocity loop and attitude loop.
type Gains struct {
	Kp     float64 `yaml:"kp"`
	Kv     float64 `yaml:"kv"`
	Ktheta float64 `yaml:"ktheta"`
	Komega float64 `yaml:"komega"`
}

// DefaultGains returns the baseline tuning used by the presets.
func DefaultGains() Gains {
	return Gains{Kp: 2.0, Kv: 3.0, Ktheta: 60.0, Komega: 15.0}
}

// Output is one step's command set: the thrust pair, the desired net force
// to be produced by thrust, and the commanded translational acceleration.
type Output struct {
	Thrust vehicle.Thrust
	FDesY  float64
	FDesZ  float64
	AccY   float64
	AccZ   float64
}

// Tracker is a stateless feedback-linearizing PD controller. Compute is
// side-effect free and callable every step with no hidden state.
type Tracker struct {
	Gains  Gains
	Params vehicle.Params
}

func NewTracker(g Gains, p vehicle.Params) *Tracker {
	return &Tracker{Gains: g, Params: p}
}

// Compute derives the desired net inertial force from tracking error plus
// the reference acceleration, subtracts gravity and the current aero force,
// projects the remainder onto the body axis for total thrust, and splits it
// through the pitch-moment balance.
func (c *Tracker) Compute(st vehicle.State, ref traj.Reference, flow vehicle.FlowState) Output {
	g := c.Gains
	p := c.Params

	accY := ref.AY + g.Kv*(ref.VY-st.VY) + g.Kp*(ref.Y-st.Y)
	accZ := ref.AZ + g.Kv*(ref.VZ-st.VZ) + g.Kp*(ref.Z-st.Z)

	// aero force resolved into inertial axes, same wind convention as the
	// rigid-body equations
	wind := st.Theta - flow.AlphaEff
	sinW, cosW := math.Sin(wind), math.Cos(wind)
	aeroY := -flow.Drag*cosW - flow.Lift*sinW
	aeroZ := -flow.Drag*sinW + flow.Lift*cosW

	fDesY := p.Mass*accY - aeroY
	fDesZ := p.Mass*accZ + p.Weight() - aeroZ

	// total thrust realizes the body-axis component of the desired force;
	// the attitude loop swings the axis toward the rest
	sinT, cosT := math.Sin(st.Theta), math.Cos(st.Theta)
	total := fDesY*cosT + fDesZ*sinT

	thetaDes := math.Atan2(fDesZ, fDesY)
	momentCmd := p.Inertia * (g.Ktheta*(thetaDes-st.Theta) - g.Komega*st.Omega)
	diff := (momentCmd - flow.Moment) / p.ArmLength

	return Output{
		Thrust: vehicle.Thrust{
			Top:    total/2 - diff/2,
			Bottom: total/2 + diff/2,
		},
		FDesY: fDesY,
		FDesZ: fDesZ,
		AccY:  accY,
		AccZ:  accZ,
	}
}
