// Package aero builds smooth coefficient interpolants from airfoil polar
// data and evaluates them by angle of attack.
package aero

import (
	"fmt"
)

// CoefficientModel maps angle of attack in degrees to lift, drag and
// pitching-moment coefficients through three independent natural cubic
// splines. Built once, read-only afterwards, safe for concurrent reads.
type CoefficientModel struct {
	cl, cd, cm *Spline
}

// NewCoefficientModel fits the model to a polar table. Samples must be
// ordered by strictly increasing angle of attack.
func NewCoefficientModel(polar []PolarPoint) (*CoefficientModel, error) {
	n := len(polar)
	if n < 2 {
		return nil, fmt.Errorf("aero: polar table needs at least 2 samples, got %d", n)
	}

	alphas := make([]float64, n)
	cls := make([]float64, n)
	cds := make([]float64, n)
	cms := make([]float64, n)
	for i, p := range polar {
		alphas[i] = p.AlphaDeg
		cls[i] = p.Cl
		cds[i] = p.Cd
		cms[i] = p.Cm
	}

	cl, err := NewSpline(alphas, cls)
	if err != nil {
		return nil, fmt.Errorf("aero: lift spline: %w", err)
	}
	cd, err := NewSpline(alphas, cds)
	if err != nil {
		return nil, fmt.Errorf("aero: drag spline: %w", err)
	}
	cm, err := NewSpline(alphas, cms)
	if err != nil {
		return nil, fmt.Errorf("aero: moment spline: %w", err)
	}

	return &CoefficientModel{cl: cl, cd: cd, cm: cm}, nil
}

// Evaluate returns (Cl, Cd, Cm) at the given angle of attack in degrees.
// Angles beyond the sampled range extrapolate linearly rather than error.
func (m *CoefficientModel) Evaluate(alphaDeg float64) (cl, cd, cm float64) {
	return m.cl.At(alphaDeg), m.cd.At(alphaDeg), m.cm.At(alphaDeg)
}

// Domain returns the sampled angle-of-attack range in degrees.
func (m *CoefficientModel) Domain() (lo, hi float64) {
	return m.cl.Domain()
}
