// Package sim drives the closed-loop transition simulation: airflow, then
// controller, then integrator, one step at a time over a uniform grid.
package sim

import (
	"context"
	"fmt"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/control"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// Simulator owns the evolving run. All other components are reentrant and
// hold no mutable shared state.
type Simulator struct {
	params     vehicle.Params
	model      *aero.CoefficientModel
	tracker    *control.Tracker
	integrator dynamo.Integrator
	metrics    []Metric
}

func New(p vehicle.Params, model *aero.CoefficientModel, tracker *control.Tracker, integ dynamo.Integrator) *Simulator {
	return &Simulator{
		params:     p,
		model:      model,
		tracker:    tracker,
		integrator: integ,
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run executes the closed loop over the whole grid. Aero forces for step i
// come from the state and thrust at i-1 (one-step-delayed coupling); the
// controller then picks the thrust that the integrator applies across the
// step. The run either completes the full grid or fails as a whole.
func (s *Simulator) Run(ctx context.Context, plan *traj.Plan, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrBadConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrBadConfig, cfg.Duration)
	}
	n := cfg.Samples()
	if len(plan.Refs) != n {
		return nil, fmt.Errorf("%w: plan has %d samples, grid needs %d", dynamo.ErrBadConfig, len(plan.Refs), n)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	steps := make([]Step, n)
	steps[0] = Step{
		State:  plan.X0,
		Ref:    plan.Refs[0],
		Thrust: plan.Thrust0,
	}

	for i := 1; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		prev := steps[i-1]
		t := float64(i-1) * cfg.Dt

		flow := vehicle.ComputeFlow(s.params, prev.State, prev.Thrust, s.model, cfg.AeroEnabled)
		out := s.tracker.Compute(prev.State, plan.Refs[i], flow)

		dyn := vehicle.NewDynamics(s.params, flow)
		u := dynamo.Control{out.Thrust.Top, out.Thrust.Bottom}
		x := s.integrator.Step(dyn, prev.State.Vector(), u, t, cfg.Dt)

		if !x.IsValid() {
			return nil, &dynamo.SimError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		steps[i] = Step{
			Time:   float64(i) * cfg.Dt,
			State:  vehicle.StateFromVector(x),
			Ref:    plan.Refs[i],
			Thrust: out.Thrust,
			Flow:   flow,
			FDesY:  out.FDesY,
			FDesZ:  out.FDesZ,
		}

		for _, m := range s.metrics {
			m.Observe(steps[i])
		}
	}

	padDerived(steps)

	result := &Result{Steps: steps, Metrics: make(map[string]float64)}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// padDerived back/forward-fills the derived (non-state) fields of the grid
// edges by copying the nearest computed neighbor. This is a documented
// cosmetic convention for downstream consumers, not a numerical result: the
// loop never evaluates airflow for the very first sample.
func padDerived(steps []Step) {
	if len(steps) < 2 {
		return
	}
	steps[0].Flow = steps[1].Flow
	steps[0].FDesY = steps[1].FDesY
	steps[0].FDesZ = steps[1].FDesZ
}
