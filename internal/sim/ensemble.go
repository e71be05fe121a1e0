package sim

import (
	"context"
	"sync"
)

// RunFunc builds and executes one independent run of a sweep.
type RunFunc func(ctx context.Context, idx int) (*Result, error)

// Ensemble executes independent, non-communicating runs concurrently, one
// goroutine per parameter combination. Runs share nothing mutable.
type Ensemble struct {
	Runs int
	Run  RunFunc
}

func (e *Ensemble) RunAll(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.Run(ctx, idx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
