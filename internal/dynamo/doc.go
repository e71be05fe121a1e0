// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental types shared by the simulator:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//
// # Thread Safety
//
// State values are plain slices and must not be shared across goroutines
// while being mutated. Independent simulation runs are independent units
// and may run concurrently.
package dynamo
