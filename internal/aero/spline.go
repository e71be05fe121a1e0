package aero

import (
	"fmt"
	"sort"
)

// Spline is a natural cubic spline interpolant. Queries outside the fitted
// domain extrapolate linearly along the endpoint tangent, so evaluation is
// defined for any input.
type Spline struct {
	xs, ys []float64
	// second derivatives at the knots, natural boundary (zero at both ends)
	m []float64
}

// NewSpline fits a natural cubic spline through the given knots. The xs
// must be strictly increasing and at least two points are required.
func NewSpline(xs, ys []float64) (*Spline, error) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return nil, fmt.Errorf("spline: need at least 2 matching knots, got %d/%d", len(xs), len(ys))
	}
	for i := 1; i < n; i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("spline: knots must be strictly increasing at index %d", i)
		}
	}

	s := &Spline{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		m:  make([]float64, n),
	}

	if n == 2 {
		return s, nil
	}

	// Tridiagonal system for interior second derivatives, solved with the
	// Thomas algorithm. Natural boundary: m[0] = m[n-1] = 0.
	k := n - 2
	diag := make([]float64, k)
	sub := make([]float64, k)
	sup := make([]float64, k)
	rhs := make([]float64, k)

	for i := 0; i < k; i++ {
		h0 := xs[i+1] - xs[i]
		h1 := xs[i+2] - xs[i+1]
		sub[i] = h0 / 6
		diag[i] = (h0 + h1) / 3
		sup[i] = h1 / 6
		rhs[i] = (ys[i+2]-ys[i+1])/h1 - (ys[i+1]-ys[i])/h0
	}

	for i := 1; i < k; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	s.m[k] = rhs[k-1] / diag[k-1]
	for i := k - 2; i >= 0; i-- {
		s.m[i+1] = (rhs[i] - sup[i]*s.m[i+2]) / diag[i]
	}

	return s, nil
}

// interval returns the index i such that xs[i] <= x < xs[i+1], clamped to
// the boundary segments.
func (s *Spline) interval(x float64) int {
	i := sort.SearchFloat64s(s.xs, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(s.xs)-2 {
		i = len(s.xs) - 2
	}
	return i
}

// At evaluates the spline at x.
func (s *Spline) At(x float64) float64 {
	if x < s.xs[0] {
		return s.ys[0] + s.FirstDeriv(s.xs[0])*(x-s.xs[0])
	}
	if last := len(s.xs) - 1; x > s.xs[last] {
		return s.ys[last] + s.FirstDeriv(s.xs[last])*(x-s.xs[last])
	}

	i := s.interval(x)
	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h
	return a*s.ys[i] + b*s.ys[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*h*h/6
}

// FirstDeriv evaluates dy/dx at x. Outside the domain the derivative is the
// constant endpoint tangent.
func (s *Spline) FirstDeriv(x float64) float64 {
	if x < s.xs[0] {
		x = s.xs[0]
	}
	if last := len(s.xs) - 1; x > s.xs[last] {
		x = s.xs[last]
	}

	i := s.interval(x)
	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h
	return (s.ys[i+1]-s.ys[i])/h +
		((1-3*a*a)*s.m[i]+(3*b*b-1)*s.m[i+1])*h/6
}

// SecondDeriv evaluates d2y/dx2 at x; zero outside the domain.
func (s *Spline) SecondDeriv(x float64) float64 {
	if x < s.xs[0] || x > s.xs[len(s.xs)-1] {
		return 0
	}

	i := s.interval(x)
	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h
	return a*s.m[i] + b*s.m[i+1]
}

// Domain returns the fitted input range.
func (s *Spline) Domain() (lo, hi float64) {
	return s.xs[0], s.xs[len(s.xs)-1]
}
