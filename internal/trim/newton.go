// Package trim finds steady-flight equilibria: thrust pair and pitch for a
// target airspeed, and the scalar terminal angle of attack used to size
// prescribed angle-of-attack transitions.
package trim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ResidualFunc evaluates an n-dimensional residual at x.
type ResidualFunc func(x []float64) []float64

// RootFinder is the narrow interface the trim solver depends on: residual
// function in, solution plus convergence error out. Any Newton, LM or
// trust-region implementation satisfies it.
type RootFinder interface {
	Solve(f ResidualFunc, seed []float64) ([]float64, error)
}

// ErrNoConvergence reports that a root finder exhausted its iteration
// budget above tolerance.
var ErrNoConvergence = errors.New("trim: root finder did not converge")

// Newton is a damped Newton iteration with a forward-difference Jacobian.
type Newton struct {
	MaxIter int
	Tol     float64 // convergence threshold on the max-abs residual
	FDStep  float64 // relative finite-difference step
}

func NewNewton() *Newton {
	return &Newton{MaxIter: 60, Tol: 1e-10, FDStep: 1e-7}
}

func (n *Newton) Solve(f ResidualFunc, seed []float64) ([]float64, error) {
	dim := len(seed)
	x := append([]float64(nil), seed...)

	for iter := 0; iter < n.MaxIter; iter++ {
		r := f(x)
		if maxAbs(r) <= n.Tol {
			return x, nil
		}

		jac := mat.NewDense(dim, dim, nil)
		for j := 0; j < dim; j++ {
			h := n.FDStep * math.Max(1, math.Abs(x[j]))
			xj := x[j]
			x[j] = xj + h
			rp := f(x)
			x[j] = xj
			for i := 0; i < dim; i++ {
				jac.Set(i, j, (rp[i]-r[i])/h)
			}
		}

		neg := mat.NewVecDense(dim, nil)
		for i := 0; i < dim; i++ {
			neg.SetVec(i, -r[i])
		}

		var step mat.VecDense
		if err := step.SolveVec(jac, neg); err != nil {
			return x, fmt.Errorf("%w: singular jacobian at iteration %d", ErrNoConvergence, iter)
		}

		// halve the step until the residual improves, up to a small budget
		base := maxAbs(r)
		scale := 1.0
		for k := 0; k < 6; k++ {
			trial := make([]float64, dim)
			for i := range trial {
				trial[i] = x[i] + scale*step.AtVec(i)
			}
			if maxAbs(f(trial)) < base || k == 5 {
				copy(x, trial)
				break
			}
			scale /= 2
		}
	}

	r := f(x)
	if maxAbs(r) <= n.Tol {
		return x, nil
	}
	return x, fmt.Errorf("%w: residual %.3e after %d iterations", ErrNoConvergence, maxAbs(r), n.MaxIter)
}

// Secant is the scalar root finder used for single-unknown sizing problems.
type Secant struct {
	MaxIter int
	Tol     float64
}

func NewSecant() *Secant {
	return &Secant{MaxIter: 80, Tol: 1e-10}
}

func (s *Secant) SolveScalar(f func(float64) float64, x0 float64) (float64, error) {
	x1 := x0 + math.Max(1e-3, math.Abs(x0)*0.05)
	f0, f1 := f(x0), f(x1)

	for iter := 0; iter < s.MaxIter; iter++ {
		if math.Abs(f1) <= s.Tol {
			return x1, nil
		}
		denom := f1 - f0
		if denom == 0 {
			return x1, fmt.Errorf("%w: flat secant at iteration %d", ErrNoConvergence, iter)
		}
		x2 := x1 - f1*(x1-x0)/denom
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
	}

	if math.Abs(f1) <= s.Tol {
		return x1, nil
	}
	return x1, fmt.Errorf("%w: scalar residual %.3e", ErrNoConvergence, math.Abs(f1))
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
