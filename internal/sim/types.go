package sim

import (
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// Config fixes the time grid and the aero switch for one run.
type Config struct {
	Dt          float64
	Duration    float64
	AeroEnabled bool
}

// Samples returns the grid length N for the configured dt and duration. The
// quotient is rounded before truncating: duration/dt pairs like 0.3/0.1 land
// just below the integer in floating point and must not lose a sample.
func (c Config) Samples() int {
	return int(math.Round(c.Duration/c.Dt)) + 1
}

// Step is one immutable per-step record: the state, its reference, the
// thrust commands that produced it, and the derived aero quantities used.
type Step struct {
	Time   float64
	State  vehicle.State
	Ref    traj.Reference
	Thrust vehicle.Thrust
	Flow   vehicle.FlowState
	FDesY  float64
	FDesZ  float64
}

// Result is a completed run over the full time grid.
type Result struct {
	Steps   []Step
	Metrics map[string]float64
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Step)
	Value() float64
	Reset()
}

// Series extracts a named column for plotting and export. Recognized names:
// y, z, theta, vy, vz, omega, t_top, t_bottom, y_ref, z_ref, vi, va,
// alpha, alpha_eff, lift, drag.
func (r *Result) Series(name string) ([]float64, bool) {
	out := make([]float64, len(r.Steps))
	for i, s := range r.Steps {
		switch name {
		case "y":
			out[i] = s.State.Y
		case "z":
			out[i] = s.State.Z
		case "theta":
			out[i] = s.State.Theta
		case "vy":
			out[i] = s.State.VY
		case "vz":
			out[i] = s.State.VZ
		case "omega":
			out[i] = s.State.Omega
		case "t_top":
			out[i] = s.Thrust.Top
		case "t_bottom":
			out[i] = s.Thrust.Bottom
		case "y_ref":
			out[i] = s.Ref.Y
		case "z_ref":
			out[i] = s.Ref.Z
		case "vi":
			out[i] = s.Flow.Vi
		case "va":
			out[i] = s.Flow.Va
		case "alpha":
			out[i] = s.Flow.Alpha
		case "alpha_eff":
			out[i] = s.Flow.AlphaEff
		case "lift":
			out[i] = s.Flow.Lift
		case "drag":
			out[i] = s.Flow.Drag
		default:
			return nil, false
		}
	}
	return out, true
}

// SeriesNames lists the columns Series understands, in export order.
func SeriesNames() []string {
	return []string{
		"y", "z", "theta", "vy", "vz", "omega",
		"t_top", "t_bottom", "y_ref", "z_ref",
		"vi", "va", "alpha", "alpha_eff", "lift", "drag",
	}
}
