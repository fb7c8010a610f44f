package quantum

import "fmt"

// Schrodinger is the standard kinetic-plus-potential Hamiltonian
// H psi = -hbar^2/(2m) laplacian(psi) + V psi discretized on a grid.
type Schrodinger struct {
	grid      *Grid
	hbar      float64
	mass      float64
	potential []float64
}

// NewSchrodinger builds a Hamiltonian over g with the sampled potential
// v. A nil v means a free particle. hbar and mass default to 1.
func NewSchrodinger(g *Grid, v []float64) (*Schrodinger, error) {
	if v == nil {
		v = make([]float64, g.Size())
	}
	if len(v) != g.Size() {
		return nil, fmt.Errorf("%w: potential has %d samples, grid has %d points", ErrGridMismatch, len(v), g.Size())
	}
	return &Schrodinger{grid: g, hbar: 1, mass: 1, potential: v}, nil
}

func (h *Schrodinger) Grid() *Grid          { return h.grid }
func (h *Schrodinger) Hbar() float64        { return h.hbar }
func (h *Schrodinger) Mass() float64        { return h.mass }
func (h *Schrodinger) Potential() []float64 { return h.potential }

// Apply writes H psi into dst. The Laplacian lands in dst first, so no
// extra scratch is needed.
func (h *Schrodinger) Apply(dst, psi State) {
	Laplacian(dst, psi, h.grid)
	kin := complex(-h.hbar*h.hbar/(2*h.mass), 0)
	for i := range dst {
		dst[i] = kin*dst[i] + complex(h.potential[i], 0)*psi[i]
	}
}

func (h *Schrodinger) GetParams() map[string]float64 {
	return map[string]float64{"hbar": h.hbar, "mass": h.mass}
}

func (h *Schrodinger) SetParam(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, name, value)
	}
	switch name {
	case "hbar":
		h.hbar = value
	case "mass":
		h.mass = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	return nil
}

// HamiltonianFunc is a user-supplied operator, mirroring a Hamiltonian
// given as a callback over the grid.
type HamiltonianFunc func(dst, psi State, g *Grid)

// Custom wraps a HamiltonianFunc as a System.
type Custom struct {
	grid *Grid
	hbar float64
	fn   HamiltonianFunc
}

func NewCustom(g *Grid, hbar float64, fn HamiltonianFunc) *Custom {
	if hbar <= 0 {
		hbar = 1
	}
	return &Custom{grid: g, hbar: hbar, fn: fn}
}

func (c *Custom) Grid() *Grid          { return c.grid }
func (c *Custom) Hbar() float64        { return c.hbar }
func (c *Custom) Apply(dst, psi State) { c.fn(dst, psi, c.grid) }
