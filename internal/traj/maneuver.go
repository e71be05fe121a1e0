// Package traj generates reference trajectories for the supported maneuver
// classes and the initial conditions that go with them.
package traj

import (
	"fmt"

	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
)

// Maneuver is a closed, tagged set of trajectory classes. The mapping from
// tag to generator is total; parsing anything else fails at configuration
// time.
type Maneuver int

const (
	Cruise Maneuver = iota
	Waypoints
	AccelRamp
	DecelRamp
	AlphaTransition
	StepPosition
	StepPitch
	StepAirspeed
	StepPitchForward
)

var maneuverNames = map[Maneuver]string{
	Cruise:           "trim-cruise",
	Waypoints:        "waypoint-spline",
	AccelRamp:        "accel-ramp",
	DecelRamp:        "decel-ramp",
	AlphaTransition:  "prescribed-angle-of-attack",
	StepPosition:     "step-in-position",
	StepPitch:        "step-in-angle",
	StepAirspeed:     "step-in-airspeed",
	StepPitchForward: "step-in-angle-forward-flight",
}

func (m Maneuver) String() string {
	if name, ok := maneuverNames[m]; ok {
		return name
	}
	return fmt.Sprintf("maneuver(%d)", int(m))
}

// ParseManeuver maps a configuration string to its tag.
func ParseManeuver(name string) (Maneuver, error) {
	for m, n := range maneuverNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownManeuver, name)
}

// Names lists the recognized maneuver names, for CLI help and validation
// messages.
func Names() []string {
	return []string{
		Cruise.String(), Waypoints.String(), AccelRamp.String(), DecelRamp.String(),
		AlphaTransition.String(), StepPosition.String(), StepPitch.String(),
		StepAirspeed.String(), StepPitchForward.String(),
	}
}
