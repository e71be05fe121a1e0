package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/control"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/integrators"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/trim"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

func coeffModel(t *testing.T) *aero.CoefficientModel {
	t.Helper()
	m, err := aero.NewCoefficientModel(aero.DefaultPolar())
	if err != nil {
		t.Fatalf("coefficient model: %v", err)
	}
	return m
}

func TestHoverHoldUnderBothIntegrators(t *testing.T) {
	p := vehicle.DefaultParams()
	model := coeffModel(t)

	st := vehicle.State{Z: 2, Theta: math.Pi / 2}
	th := vehicle.Thrust{Top: p.HoverThrust(), Bottom: p.HoverThrust()}

	// aero disabled, constant half-weight thrust per rotor: weight exactly
	// cancels and nothing moves
	flow := vehicle.ComputeFlow(p, st, th, model, false)
	dyn := vehicle.NewDynamics(p, flow)
	u := dynamo.Control{th.Top, th.Bottom}

	for _, name := range []string{"euler", "rk4"} {
		integ, err := integrators.New(name)
		if err != nil {
			t.Fatalf("integrator %s: %v", name, err)
		}

		x := st.Vector()
		dt := 0.01
		for i := 0; i < 500; i++ {
			x = integ.Step(dyn, x, u, float64(i)*dt, dt)
		}

		final := vehicle.StateFromVector(x)
		if math.Abs(final.Z-st.Z) > 1e-9 {
			t.Errorf("%s: altitude drifted from %.2f to %.12f", name, st.Z, final.Z)
		}
		if math.Abs(final.VY-st.VY) > 1e-9 {
			t.Errorf("%s: lateral velocity drifted to %.12f", name, final.VY)
		}
	}
}

func TestTrimCruiseEndToEnd(t *testing.T) {
	p := vehicle.DefaultParams()
	model := coeffModel(t)

	solver := trim.NewSolver(p, model)
	sol, err := solver.Solve(25)
	if err != nil {
		t.Fatalf("trim failed: %v", err)
	}

	cfg := Config{Dt: 0.01, Duration: 5, AeroEnabled: true}
	plan, err := traj.Generate(traj.Input{
		Maneuver:    traj.Cruise,
		N:           cfg.Samples(),
		Dt:          cfg.Dt,
		Params:      p,
		Model:       model,
		CruiseSpeed: 25,
		Trim:        sol,
	})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	integ, _ := integrators.New("rk4")
	s := New(p, model, control.NewTracker(control.DefaultGains(), p), integ)

	result, err := s.Run(context.Background(), plan, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Steps) != cfg.Samples() {
		t.Fatalf("run must cover the full grid: got %d of %d samples", len(result.Steps), cfg.Samples())
	}

	final := result.Steps[len(result.Steps)-1]
	if final.State.Theta <= 0 || final.State.Theta >= math.Pi/2 {
		t.Errorf("final pitch %.4f should sit between level and vertical", final.State.Theta)
	}

	// started at equilibrium, the loop holds the trim thrust
	trimSum := sol.Thrust.Total()
	if math.Abs(final.Thrust.Total()-trimSum)/trimSum > 0.05 {
		t.Errorf("final thrust sum %.4f should stay within 5%% of trim %.4f", final.Thrust.Total(), trimSum)
	}
	if math.Abs(final.State.Theta-sol.Theta) > 0.05 {
		t.Errorf("final pitch %.4f should hold trim pitch %.4f", final.State.Theta, sol.Theta)
	}
}

func TestPositionStepReturnsToReference(t *testing.T) {
	p := vehicle.DefaultParams()
	model := coeffModel(t)

	cfg := Config{Dt: 0.01, Duration: 6, AeroEnabled: true}
	plan, err := traj.Generate(traj.Input{
		Maneuver:      traj.StepPosition,
		N:             cfg.Samples(),
		Dt:            cfg.Dt,
		Params:        p,
		Model:         model,
		StepMagnitude: 1.0,
	})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	if plan.X0.Z != 1.0 {
		t.Fatalf("initial condition should carry the step, got z0=%.4f", plan.X0.Z)
	}

	integ, _ := integrators.New("rk4")
	s := New(p, model, control.NewTracker(control.DefaultGains(), p), integ)

	result, err := s.Run(context.Background(), plan, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := result.Steps[len(result.Steps)-1]
	if math.Abs(final.State.Z) > 0.05 {
		t.Errorf("closed loop should settle back to the reference, final z=%.4f", final.State.Z)
	}
}

func TestEdgePadding(t *testing.T) {
	p := vehicle.DefaultParams()
	model := coeffModel(t)

	cfg := Config{Dt: 0.01, Duration: 1, AeroEnabled: true}
	plan, err := traj.Generate(traj.Input{
		Maneuver:      traj.StepAirspeed,
		N:             cfg.Samples(),
		Dt:            cfg.Dt,
		Params:        p,
		Model:         model,
		StepMagnitude: 2.0,
	})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	integ, _ := integrators.New("euler")
	s := New(p, model, control.NewTracker(control.DefaultGains(), p), integ)

	result, err := s.Run(context.Background(), plan, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// the first sample's derived quantities are neighbor-copied, never a
	// default-zero placeholder
	if result.Steps[0].Flow != result.Steps[1].Flow {
		t.Error("first-sample flow should be a copy of its computed neighbor")
	}
	if result.Steps[0].Flow.Vi == 0 {
		t.Error("padded flow should reflect the stepped airspeed, not a zero placeholder")
	}
}

func TestSamplesCoverNonRepresentableGrids(t *testing.T) {
	cases := []struct {
		dt, duration float64
		want         int
	}{
		{0.1, 0.3, 4}, // 0.3/0.1 sits just below 3 in floating point
		{0.01, 5.0, 501},
		{0.02, 1.0, 51},
		{0.001, 0.007, 8},
	}

	for _, c := range cases {
		got := Config{Dt: c.dt, Duration: c.duration}.Samples()
		if got != c.want {
			t.Errorf("dt=%g duration=%g: got %d samples, want %d", c.dt, c.duration, got, c.want)
		}
	}
}

func TestRunRejectsBadGrid(t *testing.T) {
	p := vehicle.DefaultParams()
	model := coeffModel(t)
	integ, _ := integrators.New("rk4")
	s := New(p, model, control.NewTracker(control.DefaultGains(), p), integ)

	plan := &traj.Plan{Refs: make([]traj.Reference, 3)}

	_, err := s.Run(context.Background(), plan, Config{Dt: -1, Duration: 5})
	if !errors.Is(err, dynamo.ErrBadConfig) {
		t.Errorf("negative dt should be a configuration error, got %v", err)
	}

	_, err = s.Run(context.Background(), plan, Config{Dt: 0.01, Duration: 5})
	if !errors.Is(err, dynamo.ErrBadConfig) {
		t.Errorf("mismatched plan length should be a configuration error, got %v", err)
	}
}
