package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent copies of one cloth, each with its own
// relaxation pass count, on separate goroutines. Each simulator stays
// single-threaded.
type Ensemble struct {
	base    Config
	metrics func() []Metric
}

func NewEnsemble(base Config, metrics func() []Metric) *Ensemble {
	return &Ensemble{base: base, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, rc RunConfig, iterations []int) ([]*Result, error) {
	results := make([]*Result, len(iterations))
	errs := make([]error, len(iterations))

	var wg sync.WaitGroup
	for i, n := range iterations {
		wg.Add(1)
		go func(idx, n int) {
			defer wg.Done()

			cfg := e.base
			cfg.Params.Iterations = n

			s, err := New(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, rc)
		}(i, n)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
