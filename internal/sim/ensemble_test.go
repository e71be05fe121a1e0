package sim

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestEnsembleRunsAll(t *testing.T) {
	e := Ensemble{
		Runs: 8,
		Run: func(ctx context.Context, idx int) (*Result, error) {
			return &Result{Metrics: map[string]float64{"idx": float64(idx)}}, nil
		},
	}

	results, err := e.RunAll(context.Background())
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Metrics["idx"] != float64(i) {
			t.Errorf("result %d landed at the wrong index: %v", i, r.Metrics)
		}
	}
}

func TestEnsembleFailsAsAWhole(t *testing.T) {
	wantErr := errors.New("diverged")
	e := Ensemble{
		Runs: 4,
		Run: func(ctx context.Context, idx int) (*Result, error) {
			if idx == 2 {
				return nil, fmt.Errorf("run %d: %w", idx, wantErr)
			}
			return &Result{}, nil
		},
	}

	if _, err := e.RunAll(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected the run error to surface, got %v", err)
	}
}
