package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

func smallRun() (sim.Config, sim.RunConfig) {
	cfg := sim.DefaultConfig()
	cfg.Cols, cfg.Rows = 8, 6
	rc := sim.DefaultRunConfig()
	rc.Frames = 30
	return cfg, rc
}

func TestGridSearch_PrefersMoreIterations(t *testing.T) {
	cfg, rc := smallRun()
	g := NewGridSearch([]string{"iterations"}, [][]float64{{1, 16}})

	params, best, err := g.Search(context.Background(), cfg, rc, func() sim.Metric { return metrics.NewMaxStretch() })
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if params["iterations"] != 16 {
		t.Errorf("best iterations = %v, want 16", params["iterations"])
	}
	if best < 1 {
		t.Errorf("max stretch %v below rest length", best)
	}
}

func TestGridSearch_VisitsEveryCombination(t *testing.T) {
	cfg, rc := smallRun()
	rc.Frames = 5
	g := NewGridSearch([]string{"gravity", "damping"}, [][]float64{{0.1, 0.2, 0.3}, {0.9, 0.95}})

	runs := 0
	_, _, err := g.Search(context.Background(), cfg, rc, func() sim.Metric {
		runs++
		return metrics.NewMotion()
	})
	if err != nil {
		t.Fatal(err)
	}
	if runs != 6 {
		t.Errorf("ran %d combinations, want 6", runs)
	}
}

func TestGridSearch_UnknownParam(t *testing.T) {
	cfg, rc := smallRun()
	g := NewGridSearch([]string{"viscosity"}, [][]float64{{1}})
	_, _, err := g.Search(context.Background(), cfg, rc, func() sim.Metric { return metrics.NewMotion() })
	if !errors.Is(err, sim.ErrInvalidRun) {
		t.Errorf("err = %v, want ErrInvalidRun", err)
	}
}

func TestGridSearch_Cancelled(t *testing.T) {
	cfg, rc := smallRun()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"iterations"}, [][]float64{{1, 2}})
	_, _, err := g.Search(ctx, cfg, rc, func() sim.Metric { return metrics.NewMotion() })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
