package vehicle

import (
	"math"
	"testing"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
)

func testModel(t *testing.T) *aero.CoefficientModel {
	t.Helper()
	m, err := aero.NewCoefficientModel(aero.DefaultPolar())
	if err != nil {
		t.Fatalf("coefficient model: %v", err)
	}
	return m
}

func TestSpeedsNeverNegative(t *testing.T) {
	p := DefaultParams()
	m := testModel(t)

	states := []State{
		{},
		{VY: 25, Theta: 0.1},
		{VY: -10, VZ: 3, Theta: 1.2},
		{VZ: -8, Theta: math.Pi / 2},
		{VY: 0.5, VZ: 0.5, Theta: -0.3, Omega: 2},
	}
	thrusts := []Thrust{
		{},
		{Top: 4.2, Bottom: 4.2},
		{Top: 1.0, Bottom: 7.0},
		{Top: -2.0, Bottom: 3.0}, // commands are not clamped upstream
	}

	for _, st := range states {
		for _, th := range thrusts {
			f := ComputeFlow(p, st, th, m, true)
			if f.Vi < 0 || f.Va < 0 || f.WashAvg < 0 || f.WashTop < 0 || f.WashBottom < 0 {
				t.Errorf("negative speed for state %+v thrust %+v: %+v", st, th, f)
			}
		}
	}
}

func TestZeroAirspeedFallback(t *testing.T) {
	p := DefaultParams()
	m := testModel(t)

	for _, theta := range []float64{0, 0.7, math.Pi / 2, 2.4, -1.1} {
		st := State{Theta: theta}
		f := ComputeFlow(p, st, Thrust{Top: 4, Bottom: 4}, m, true)

		if f.Gamma != 0 {
			t.Errorf("theta=%.2f: gamma should fall back to 0, got %v", theta, f.Gamma)
		}
		if f.AlphaEff != 0 {
			t.Errorf("theta=%.2f: alpha_e should fall back to 0, got %v", theta, f.AlphaEff)
		}
		if math.Abs(f.Alpha-theta) > 1e-15 {
			t.Errorf("theta=%.2f: alpha should equal theta at zero speed, got %v", theta, f.Alpha)
		}
	}
}

func TestAeroDisabledForcesZeroCoefficients(t *testing.T) {
	p := DefaultParams()
	m := testModel(t)

	st := State{VY: 15, VZ: -2, Theta: 0.4}
	f := ComputeFlow(p, st, Thrust{Top: 3, Bottom: 3}, m, false)

	if f.Lift != 0 || f.Drag != 0 || f.Moment != 0 {
		t.Errorf("disabled aero must produce zero forces, got %+v", f)
	}
	if f.AlphaEff != f.Alpha {
		t.Errorf("disabled aero must use geometric alpha, got %v want %v", f.AlphaEff, f.Alpha)
	}
}

func TestWashGrowsWithThrust(t *testing.T) {
	p := DefaultParams()
	m := testModel(t)
	st := State{Theta: math.Pi / 2}

	low := ComputeFlow(p, st, Thrust{Top: 1, Bottom: 1}, m, true)
	high := ComputeFlow(p, st, Thrust{Top: 6, Bottom: 6}, m, true)

	if high.WashAvg <= low.WashAvg {
		t.Errorf("wash should grow with thrust: %.3f vs %.3f", high.WashAvg, low.WashAvg)
	}
}

func TestHoverDerivativeBalance(t *testing.T) {
	p := DefaultParams()
	st := State{Theta: math.Pi / 2}
	th := Thrust{Top: p.HoverThrust(), Bottom: p.HoverThrust()}

	// aero disabled, thrust exactly cancels weight
	f := ComputeFlow(p, st, th, testModel(t), false)
	dyn := NewDynamics(p, f)
	dx := dyn.Derive(st.Vector(), []float64{th.Top, th.Bottom}, 0)

	for i, v := range dx {
		if math.Abs(v) > 1e-12 {
			t.Errorf("hover derivative[%d] should vanish, got %v", i, v)
		}
	}
}
