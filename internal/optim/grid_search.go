// Package optim sweeps controller gains over a grid and keeps the set that
// minimizes a simulation metric.
package optim

import (
	"context"
	"math"

	"github.com/Chenchunxuan/qbit-simulator/internal/control"
	"github.com/Chenchunxuan/qbit-simulator/internal/sim"
)

// RunFunc executes one closed-loop run with the candidate gains and returns
// its metrics. Failed candidates are skipped, not fatal.
type RunFunc func(ctx context.Context, g control.Gains) (*sim.Result, error)

// GridSearch enumerates the cartesian product of per-gain candidate values.
type GridSearch struct {
	names  []string
	ranges [][]float64
}

// NewGridSearch takes parallel slices: gain names ("kp", "kv", "ktheta",
// "komega") and the candidate values for each.
func NewGridSearch(names []string, ranges [][]float64) *GridSearch {
	return &GridSearch{names: names, ranges: ranges}
}

// Search runs every grid point and returns the gains with the lowest value
// of the named metric, alongside that value. Gains not named in the sweep
// keep their base values.
func (g *GridSearch) Search(ctx context.Context, base control.Gains, run RunFunc, metricName string) (control.Gains, float64, error) {
	best := math.Inf(1)
	bestGains := base

	err := g.searchRecursive(ctx, 0, base, run, metricName, &best, &bestGains)
	return bestGains, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current control.Gains,
	run RunFunc,
	metricName string,
	best *float64,
	bestGains *control.Gains,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.names) {
		result, err := run(ctx, current)
		if err != nil {
			// unstable candidate; let the sweep continue
			return nil
		}
		if val, ok := result.Metrics[metricName]; ok && val < *best {
			*best = val
			*bestGains = current
		}
		return nil
	}

	for _, val := range g.ranges[depth] {
		next := current
		applyGain(&next, g.names[depth], val)
		if err := g.searchRecursive(ctx, depth+1, next, run, metricName, best, bestGains); err != nil {
			return err
		}
	}
	return nil
}

func applyGain(g *control.Gains, name string, val float64) {
	switch name {
	case "kp":
		g.Kp = val
	case "kv":
		g.Kv = val
	case "ktheta":
		g.Ktheta = val
	case "komega":
		g.Komega = val
	}
}

// GainNames lists the sweepable gain names.
func GainNames() []string {
	return []string{"kp", "kv", "ktheta", "komega"}
}
