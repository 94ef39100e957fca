package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/clothsim/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no parameter combination completed")

// GridSearch tries every combination of the given cloth parameter values and
// keeps the one that minimises a final metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs one headless simulation per combination. newMetric must build a
// fresh metric on every call. Runs that fail or go non-finite are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base sim.Config,
	rc sim.RunConfig,
	newMetric func() sim.Metric,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%w: %d parameters but %d ranges", sim.ErrInvalidRun, len(g.paramNames), len(g.ranges))
	}
	known := base.Params.GetParams()
	for _, name := range g.paramNames {
		if _, ok := known[name]; !ok {
			return nil, 0, fmt.Errorf("%w: unknown parameter %q", sim.ErrInvalidRun, name)
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), base, rc, newMetric, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base sim.Config,
	rc sim.RunConfig,
	newMetric func() sim.Metric,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		cfg := base
		for k, v := range current {
			cfg.Params.SetParam(k, v)
		}

		s, err := sim.New(cfg)
		if err != nil {
			return
		}
		m := newMetric()
		s.AddMetric(m)

		result, err := s.Run(ctx, rc)
		if err != nil || len(result.Errors) > 0 {
			return
		}

		val := result.Metrics[m.Name()]
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, base, rc, newMetric, best, bestParams)
	}
}
