package trim

import (
	"errors"
	"math"
	"testing"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

func newSolver(t *testing.T) *Solver {
	t.Helper()
	model, err := aero.NewCoefficientModel(aero.DefaultPolar())
	if err != nil {
		t.Fatalf("coefficient model: %v", err)
	}
	return NewSolver(vehicle.DefaultParams(), model)
}

func TestHoverTrim(t *testing.T) {
	s := newSolver(t)

	sol, err := s.Solve(0)
	if err != nil {
		t.Fatalf("hover trim failed: %v", err)
	}

	// at zero airspeed thrust carries the weight (plus a small wash-drag
	// penalty), so the pair sums to within 5% of mg
	mg := s.Params.Weight()
	sum := sol.Thrust.Total()
	if math.Abs(sum-mg)/mg > 0.05 {
		t.Errorf("hover thrust sum %.4f should be within 5%% of mg=%.4f", sum, mg)
	}

	if math.Abs(sol.Theta-math.Pi/2) > 1e-6 {
		t.Errorf("hover pitch should be pi/2, got %.6f", sol.Theta)
	}
	if math.Abs(sol.Thrust.Top-sol.Thrust.Bottom) > 1e-6 {
		t.Errorf("hover thrust should split evenly, got %+v", sol.Thrust)
	}
}

func TestCruiseTrimResidual(t *testing.T) {
	s := newSolver(t)

	sol, err := s.Solve(25)
	if err != nil {
		t.Fatalf("cruise trim failed: %v", err)
	}

	// the solution fed back through the airflow/aero model must balance
	r := s.Residual(25, []float64{sol.Thrust.Top, sol.Thrust.Bottom, sol.Theta})
	for i, v := range r {
		if math.Abs(v) > 1e-6 {
			t.Errorf("residual[%d] = %.3e above tolerance", i, v)
		}
	}

	if sol.Theta <= 0 || sol.Theta >= math.Pi/2 {
		t.Errorf("cruise pitch %.4f should sit between level and vertical", sol.Theta)
	}
	// wing-borne flight: thrust mostly cancels drag, well below weight
	if sol.Thrust.Total() >= s.Params.Weight() {
		t.Errorf("cruise thrust %.4f should be below weight %.4f", sol.Thrust.Total(), s.Params.Weight())
	}
}

func TestTrimNotFoundIsRecoverable(t *testing.T) {
	s := newSolver(t)
	s.Finder = &Newton{MaxIter: 1, Tol: 1e-14, FDStep: 1e-7}

	_, err := s.SolveFrom(25, Solution{Thrust: vehicle.Thrust{Top: 40, Bottom: -40}, Theta: 3})
	if err == nil {
		t.Fatal("expected non-convergence with a one-iteration budget")
	}
	if !errors.Is(err, dynamo.ErrTrimNotFound) {
		t.Errorf("error should wrap ErrTrimNotFound, got %v", err)
	}
}

func TestTerminalAlpha(t *testing.T) {
	s := newSolver(t)

	alpha, err := s.TerminalAlpha(25, 1.0)
	if err != nil {
		t.Fatalf("terminal alpha failed: %v", err)
	}

	// lift at the returned alpha must equal weight
	cl, _, _ := s.Model.Evaluate(alpha * 180 / math.Pi)
	q := 0.5 * s.Params.AirDensity * 25 * 25 * s.Params.WingArea()
	if math.Abs(q*cl-s.Params.Weight()) > 1e-6 {
		t.Errorf("lift %.6f should match weight %.6f", q*cl, s.Params.Weight())
	}
	if alpha <= 0 || alpha > math.Pi/4 {
		t.Errorf("terminal alpha %.4f rad outside the plausible pre-stall range", alpha)
	}
}

func TestNewtonOnQuadratic(t *testing.T) {
	f := func(x []float64) []float64 {
		return []float64{x[0]*x[0] - 4, x[1] - 1}
	}

	x, err := NewNewton().Solve(f, []float64{3, 0})
	if err != nil {
		t.Fatalf("newton failed: %v", err)
	}
	if math.Abs(x[0]-2) > 1e-8 || math.Abs(x[1]-1) > 1e-8 {
		t.Errorf("expected (2, 1), got (%v, %v)", x[0], x[1])
	}
}
