package metrics

import (
	"math"
	"testing"

	"github.com/Chenchunxuan/qbit-simulator/internal/sim"
	"github.com/Chenchunxuan/qbit-simulator/internal/traj"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

func TestTrackingErrorRMS(t *testing.T) {
	m := NewTrackingError()

	m.Observe(sim.Step{Ref: traj.Reference{Y: 3}, State: vehicle.State{}})
	m.Observe(sim.Step{Ref: traj.Reference{Z: 4}, State: vehicle.State{}})

	// errors 3 and 4: RMS = sqrt((9+16)/2)
	want := math.Sqrt(12.5)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("got %.6f, expected %.6f", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset should zero the metric, got %f", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	c := NewControlEffort()

	c.Observe(sim.Step{Thrust: vehicle.Thrust{Top: 2, Bottom: 3}})
	c.Observe(sim.Step{Thrust: vehicle.Thrust{Top: -1, Bottom: 4}})

	if math.Abs(c.Value()-5) > 1e-12 {
		t.Errorf("got %.6f, expected 5", c.Value())
	}
}
