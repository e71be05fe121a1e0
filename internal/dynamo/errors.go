package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrTrimNotFound indicates the equilibrium solver did not converge
	// within its iteration and tolerance budget. Recoverable by retrying
	// with a different seed.
	ErrTrimNotFound = errors.New("dynamo: trim solution not found")

	// ErrUnknownManeuver indicates an unrecognized maneuver selection.
	ErrUnknownManeuver = errors.New("dynamo: unknown maneuver")

	// ErrUnknownIntegrator indicates an unrecognized integration scheme.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrBadConfig indicates a configuration rejected before any
	// simulation work begins.
	ErrBadConfig = errors.New("dynamo: invalid configuration")
)

// SimError wraps an error with the step and time it fired at.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
