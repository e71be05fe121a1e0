package vehicle

import (
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
)

// speedEpsilon guards the flight-path angle and effective angle of attack,
// both undefined at zero relative airspeed.
const speedEpsilon = 1e-10

// FlowState holds the per-step derived aerodynamic quantities. They are
// recomputed every step from the previous state and previous thrust and are
// never persisted as input.
type FlowState struct {
	Vi    float64 // inertial airspeed magnitude, m/s
	Gamma float64 // flight-path angle, rad (0 at zero speed)
	Alpha float64 // geometric angle of attack theta-gamma, rad

	WashTop    float64 // induced wash speed, top rotor, m/s
	WashBottom float64 // induced wash speed, bottom rotor, m/s
	WashAvg    float64 // induced wash speed from averaged thrust, m/s

	Va       float64 // effective airspeed, m/s
	AlphaEff float64 // effective angle of attack, rad

	Cl, Cd, Cm float64
	Lift       float64 // N
	Drag       float64 // N
	Moment     float64 // N*m
}

// washSpeed is the momentum-theory induced velocity at the wing for one
// thrust value, projected free stream included.
func washSpeed(p Params, vi, alpha, thrust float64) float64 {
	axial := vi * math.Cos(alpha)
	radicand := axial*axial + thrust/(0.5*p.AirDensity*p.DiskArea())
	if radicand < 0 {
		// negative thrust commands are not clamped upstream; the wash
		// model only admits a non-negative radicand
		radicand = 0
	}
	return p.WashEta * math.Sqrt(radicand)
}

// ComputeFlow evaluates the airflow and aero force model for one step,
// given the previous-step state and thrust commands. With aero disabled the
// effective angle tracks the geometric one and every coefficient is forced
// to zero (pure-thrust flight).
func ComputeFlow(p Params, st State, th Thrust, model *aero.CoefficientModel, aeroEnabled bool) FlowState {
	f := FlowState{}

	f.Vi = math.Hypot(st.VY, st.VZ)
	if f.Vi > speedEpsilon {
		f.Gamma = math.Atan2(st.VZ, st.VY)
	}
	f.Alpha = st.Theta - f.Gamma

	f.WashTop = washSpeed(p, f.Vi, f.Alpha, th.Top)
	f.WashBottom = washSpeed(p, f.Vi, f.Alpha, th.Bottom)
	f.WashAvg = washSpeed(p, f.Vi, f.Alpha, th.Total()/2)

	// law-of-cosines composition of free stream and averaged wash
	f.Va = math.Sqrt(f.Vi*f.Vi + f.WashAvg*f.WashAvg + 2*f.Vi*f.WashAvg*math.Cos(f.Alpha))

	if !aeroEnabled {
		f.AlphaEff = f.Alpha
		return f
	}

	if f.Va > speedEpsilon {
		ratio := f.Vi * math.Sin(f.Alpha) / f.Va
		// the ratio is a sine by construction; shave numerical overshoot
		ratio = math.Max(-1, math.Min(1, ratio))
		f.AlphaEff = math.Asin(ratio)
	}

	f.Cl, f.Cd, f.Cm = model.Evaluate(f.AlphaEff * 180 / math.Pi)

	q := 0.5 * p.AirDensity * f.Va * f.Va * p.WingArea()
	f.Lift = q * f.Cl
	f.Drag = q * f.Cd
	f.Moment = q * p.Chord * f.Cm

	return f
}
