package integrators

import (
	"fmt"

	"github.com/Chenchunxuan/qbit-simulator/internal/dynamo"
)

// New returns the integrator registered under name. The set of schemes is
// closed: selecting anything else is a configuration error.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want euler or rk4)", dynamo.ErrUnknownIntegrator, name)
	}
}
