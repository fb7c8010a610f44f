// Package quantum provides the core primitives for finite-difference
// simulation of the time-dependent Schrodinger equation.
//
// The package defines the fundamental types shared by every other package:
//
//   - [State]: complex wavefunction samples, flattened row-major
//   - [Grid]: uniform 1D/2D spatial discretization with trapezoid quadrature
//   - [System]: a Hamiltonian operator applied to a state (H psi)
//   - [Propagator]: advances a state by one time step
//   - [Boundary]: post-step boundary condition strategy
//
// # Example
//
//	g, _ := quantum.NewGrid(quantum.Span{Min: 0, Max: 1, Points: 50})
//	sys, _ := quantum.NewSchrodinger(g, nil)
//	prop := propagators.NewTaylor(70)
//	psi = prop.Step(sys, psi, 5e-3)
//
// # Thread Safety
//
// States and grids are plain data and safe for concurrent reads.
// Propagators keep internal scratch buffers and are NOT safe for
// concurrent use; give each goroutine its own.
package quantum
