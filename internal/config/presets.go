package config

import "sort"

// Presets are ready-to-run scenarios keyed by name. Each starts from the
// defaults and overrides only what the scenario needs.
var Presets = map[string]func() *Config{
	"cruise-25": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "trim-cruise"
		c.CruiseSpeed = 25
		c.Duration = 5
		return c
	},
	"hover-step": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "step-in-position"
		c.StepMagnitude = 1.0
		c.Duration = 6
		return c
	},
	"pitch-step": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "step-in-angle"
		c.StepMagnitude = 0.2
		c.Duration = 4
		return c
	},
	"takeoff-ramp": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "accel-ramp"
		c.CruiseSpeed = 20
		c.Accel = 4
		c.Buffer = 2
		c.Duration = 7
		return c
	},
	"landing-ramp": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "decel-ramp"
		c.CruiseSpeed = 20
		c.Accel = 4
		c.Buffer = 2
		c.Duration = 7
		return c
	},
	"transition": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "prescribed-angle-of-attack"
		c.TransitionTime = 4
		c.TerminalAlpha = 0.15
		c.Duration = 8
		return c
	},
	"waypoint-tour": func() *Config {
		c := DefaultConfig()
		c.Maneuver = "waypoint-spline"
		c.CruiseSpeed = 8
		c.Waypoints = [][2]float64{{0, 0}, {20, 5}, {45, -3}, {70, 0}}
		c.Duration = 10
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

// ListPresets returns the preset names, sorted for stable CLI output.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
