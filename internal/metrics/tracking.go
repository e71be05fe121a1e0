// Package metrics provides per-run scalar accumulators observed each step.
package metrics

import (
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/sim"
)

// TrackingError accumulates the RMS position error against the reference.
type TrackingError struct {
	name    string
	sum     float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{name: "tracking_error_rms"}
}

func (m *TrackingError) Name() string {
	return m.name
}

func (m *TrackingError) Observe(s sim.Step) {
	ey := s.Ref.Y - s.State.Y
	ez := s.Ref.Z - s.State.Z
	m.sum += ey*ey + ez*ez
	m.samples++
}

func (m *TrackingError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sum / float64(m.samples))
}

func (m *TrackingError) Reset() {
	m.sum = 0
	m.samples = 0
}
