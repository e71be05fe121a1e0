package trim

import (
	"fmt"
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// Solution is an equilibrium flight condition: per-rotor thrust and pitch
// giving zero net force and moment at the target airspeed. Computed once
// before the main loop and read-only afterwards.
type Solution struct {
	Thrust vehicle.Thrust
	Theta  float64 // rad
	Speed  float64 // m/s
}

// Solver wraps a root finder around the force/moment balance residual.
type Solver struct {
	Params vehicle.Params
	Model  *aero.CoefficientModel
	Finder RootFinder
}

func NewSolver(p vehicle.Params, model *aero.CoefficientModel) *Solver {
	return &Solver{Params: p, Model: model, Finder: NewNewton()}
}

// Residual evaluates the trim residual (net horizontal force, net vertical
// force, net pitch moment) at the candidate (T_top, T_bottom, theta). It is
// algebraically one evaluation of the dynamics model at zero acceleration.
func (s *Solver) Residual(speed float64, x []float64) []float64 {
	st := vehicle.State{VY: speed, Theta: x[2]}
	th := vehicle.Thrust{Top: x[0], Bottom: x[1]}

	flow := vehicle.ComputeFlow(s.Params, st, th, s.Model, true)
	dyn := vehicle.NewDynamics(s.Params, flow)
	dx := dyn.Derive(st.Vector(), dynamo.Control{th.Top, th.Bottom}, 0)

	return []float64{
		s.Params.Mass * dx[3],
		s.Params.Mass * dx[4],
		s.Params.Inertia * dx[5],
	}
}

// SolveFrom solves for equilibrium at the given airspeed starting at an
// explicit seed. Failure is recoverable: callers may retry with another
// seed.
func (s *Solver) SolveFrom(speed float64, seed Solution) (Solution, error) {
	f := func(x []float64) []float64 { return s.Residual(speed, x) }

	x, err := s.Finder.Solve(f, []float64{seed.Thrust.Top, seed.Thrust.Bottom, seed.Theta})
	if err != nil {
		return Solution{}, fmt.Errorf("%w: speed %.2f m/s: %v", dynamo.ErrTrimNotFound, speed, err)
	}

	return Solution{
		Thrust: vehicle.Thrust{Top: x[0], Bottom: x[1]},
		Theta:  x[2],
		Speed:  speed,
	}, nil
}

// Solve finds the equilibrium at the given airspeed, walking a short seed
// schedule from the physically reasonable default (half-weight thrust
// split, 45 degree pitch) toward the hover and cruise ends of the envelope.
func (s *Solver) Solve(speed float64) (Solution, error) {
	half := s.Params.HoverThrust()
	seeds := []Solution{
		{Thrust: vehicle.Thrust{Top: half, Bottom: half}, Theta: math.Pi / 4},
		{Thrust: vehicle.Thrust{Top: half, Bottom: half}, Theta: math.Pi/2 - 0.05},
		{Thrust: vehicle.Thrust{Top: half / 4, Bottom: half / 4}, Theta: 0.15},
	}

	var lastErr error
	for _, seed := range seeds {
		sol, err := s.SolveFrom(speed, seed)
		if err == nil {
			return sol, nil
		}
		lastErr = err
	}
	return Solution{}, lastErr
}

// TerminalAlpha sizes the terminal angle of attack of a prescribed
// angle-of-attack transition: the alpha at which lift at the given airspeed
// equals ratio times weight. Returns radians.
func (s *Solver) TerminalAlpha(speed, ratio float64) (float64, error) {
	q := 0.5 * s.Params.AirDensity * speed * speed * s.Params.WingArea()
	target := ratio * s.Params.Weight()

	g := func(alphaDeg float64) float64 {
		cl, _, _ := s.Model.Evaluate(alphaDeg)
		return q*cl - target
	}

	alphaDeg, err := NewSecant().SolveScalar(g, 5.0)
	if err != nil {
		return 0, fmt.Errorf("%w: terminal alpha at %.2f m/s: %v", dynamo.ErrTrimNotFound, speed, err)
	}
	return alphaDeg * math.Pi / 180, nil
}
