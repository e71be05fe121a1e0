package aero

import (
	"math"
	"testing"
)

func TestSplineInterpolatesKnots(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, -1, 0}

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	for i := range xs {
		got := s.At(xs[i])
		if math.Abs(got-ys[i]) > 1e-12 {
			t.Errorf("knot %d: got %.12f, expected %.12f", i, got, ys[i])
		}
	}
}

func TestSplineSmoothness(t *testing.T) {
	// sample a sine and check mid-interval reconstruction
	xs := make([]float64, 21)
	ys := make([]float64, 21)
	for i := range xs {
		xs[i] = float64(i) * 0.2
		ys[i] = math.Sin(xs[i])
	}

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	for x := 0.1; x < 3.9; x += 0.2 {
		if math.Abs(s.At(x)-math.Sin(x)) > 1e-3 {
			t.Errorf("at %.2f: got %.6f, expected %.6f", x, s.At(x), math.Sin(x))
		}
		if math.Abs(s.FirstDeriv(x)-math.Cos(x)) > 1e-2 {
			t.Errorf("deriv at %.2f: got %.6f, expected %.6f", x, s.FirstDeriv(x), math.Cos(x))
		}
	}
}

func TestSplineExtrapolatesLinearly(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 1, 2}

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	// a straight line stays a straight line beyond either end
	if math.Abs(s.At(-3)-(-3)) > 1e-9 {
		t.Errorf("left extrapolation: got %.6f, expected -3", s.At(-3))
	}
	if math.Abs(s.At(10)-10) > 1e-9 {
		t.Errorf("right extrapolation: got %.6f, expected 10", s.At(10))
	}
	if math.IsNaN(s.At(1e6)) || math.IsInf(s.At(1e6), 0) {
		t.Error("far extrapolation must stay finite")
	}
}

func TestSplineRejectsBadKnots(t *testing.T) {
	if _, err := NewSpline([]float64{0}, []float64{1}); err == nil {
		t.Error("expected error for single knot")
	}
	if _, err := NewSpline([]float64{0, 0, 1}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for non-increasing knots")
	}
}
