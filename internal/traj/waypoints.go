package traj

import (
	"fmt"
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/aero"
	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
	"github.com/Chenchunxuan/qbit-simulator/internal/vehicle"
)

// genWaypoints fits natural cubic splines through the 2-D waypoints,
// parameterized by cumulative chord length, and traverses them at the
// cruise speed. Past the final knot the position reference freezes.
func genWaypoints(in Input) (*Plan, error) {
	if len(in.Waypoints) < 2 {
		return nil, fmt.Errorf("%w: waypoint spline needs at least 2 waypoints", dynamo.ErrBadConfig)
	}
	if in.CruiseSpeed <= 0 {
		return nil, fmt.Errorf("%w: waypoint spline needs a positive cruise speed", dynamo.ErrBadConfig)
	}

	n := len(in.Waypoints)
	s := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for i, wp := range in.Waypoints {
		ys[i] = wp[0]
		zs[i] = wp[1]
		if i > 0 {
			d := math.Hypot(wp[0]-in.Waypoints[i-1][0], wp[1]-in.Waypoints[i-1][1])
			if d == 0 {
				return nil, fmt.Errorf("%w: duplicate waypoint at index %d", dynamo.ErrBadConfig, i)
			}
			s[i] = s[i-1] + d
		}
	}

	ySpline, err := aero.NewSpline(s, ys)
	if err != nil {
		return nil, fmt.Errorf("waypoint y spline: %w", err)
	}
	zSpline, err := aero.NewSpline(s, zs)
	if err != nil {
		return nil, fmt.Errorf("waypoint z spline: %w", err)
	}

	length := s[n-1]
	v := in.CruiseSpeed
	duration := length / v

	refs := grid(in.N)
	for i := range refs {
		t := float64(i) * in.Dt
		if si := v * t; si < length {
			// chord-length parameter traversed at the cruise rate; the
			// chain rule gives velocity and acceleration references
			refs[i] = Reference{
				Y:  ySpline.At(si),
				Z:  zSpline.At(si),
				VY: ySpline.FirstDeriv(si) * v,
				VZ: zSpline.FirstDeriv(si) * v,
				AY: ySpline.SecondDeriv(si) * v * v,
				AZ: zSpline.SecondDeriv(si) * v * v,
			}
		} else {
			refs[i] = Reference{Y: ys[n-1], Z: zs[n-1]}
		}
	}

	x0 := vehicle.State{
		Y:     ys[0],
		Z:     zs[0],
		Theta: in.Trim.Theta,
		VY:    ySpline.FirstDeriv(0) * v,
		VZ:    zSpline.FirstDeriv(0) * v,
	}

	return &Plan{Refs: refs, X0: x0, Thrust0: in.Trim.Thrust, Duration: duration}, nil
}
