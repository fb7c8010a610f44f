package quantum

import "math"

// State holds complex wavefunction amplitudes sampled on a grid,
// flattened row-major (first axis outermost).
type State []complex128

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		re, im := real(v), imag(v)
		if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
			return false
		}
	}
	return true
}

func (s State) Scale(c complex128) {
	for i := range s {
		s[i] *= c
	}
}

// SquareModulus writes |psi|^2 into dst, allocating when dst is too short.
func (s State) SquareModulus(dst []float64) []float64 {
	if len(dst) < len(s) {
		dst = make([]float64, len(s))
	}
	dst = dst[:len(s)]
	for i, v := range s {
		re, im := real(v), imag(v)
		dst[i] = re*re + im*im
	}
	return dst
}

func (s State) Real(dst []float64) []float64 {
	if len(dst) < len(s) {
		dst = make([]float64, len(s))
	}
	dst = dst[:len(s)]
	for i, v := range s {
		dst[i] = real(v)
	}
	return dst
}

func (s State) Imag(dst []float64) []float64 {
	if len(dst) < len(s) {
		dst = make([]float64, len(s))
	}
	dst = dst[:len(s)]
	for i, v := range s {
		dst[i] = imag(v)
	}
	return dst
}

// System is a Hamiltonian operator acting on states over a fixed grid.
type System interface {
	// Apply writes H psi into dst. dst and psi must not alias.
	Apply(dst, psi State)
	Grid() *Grid
	Hbar() float64
}

// Propagator advances a state by one time step and returns the evolved
// state. Implementations may reuse internal scratch between calls.
type Propagator interface {
	Step(sys System, psi State, dt float64) State
	Name() string
}

// Preparer is implemented by propagators that need to validate or
// precompute against a system before stepping (Crank-Nicolson builds
// its tridiagonal factors here).
type Preparer interface {
	Prepare(sys System) error
}

// Boundary applies boundary conditions to a state after each step.
type Boundary interface {
	Apply(psi State, g *Grid)
	Name() string
}

// Metric accumulates a scalar diagnostic over the course of a run.
type Metric interface {
	Name() string
	Observe(psi State, t float64)
	Value() float64
	Reset()
}

// Observer receives each recorded sample during a run.
type Observer interface {
	OnStep(psi State, t float64)
}

// Configurable is implemented by systems with tunable parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Energy returns the expectation value <psi|H|psi> for a normalized
// state. Callers in hot loops should prefer a reused scratch buffer and
// the grid's InnerProduct directly.
func Energy(sys System, psi State) float64 {
	h := make(State, len(psi))
	sys.Apply(h, psi)
	return real(sys.Grid().InnerProduct(psi, h))
}
