package quantum

import "fmt"

// Dirichlet returns the boundary strategy that zeroes the grid's edge
// ring after each step, pinning the wavefunction at hard walls.
func Dirichlet() Boundary { return dirichlet{} }

// NoBoundary returns the strategy that leaves the step result untouched.
func NoBoundary() Boundary { return noBoundary{} }

// BoundaryByName resolves "dirichlet" or "none". The empty string maps
// to none, matching scenarios that omit a boundary callback.
func BoundaryByName(name string) (Boundary, error) {
	switch name {
	case "dirichlet":
		return Dirichlet(), nil
	case "none", "":
		return NoBoundary(), nil
	default:
		return nil, fmt.Errorf("%w: unknown boundary %q", ErrInvalidConfig, name)
	}
}

type dirichlet struct{}

func (dirichlet) Name() string { return "dirichlet" }

func (dirichlet) Apply(psi State, g *Grid) {
	switch g.Dim() {
	case 1:
		psi[0] = 0
		psi[len(psi)-1] = 0
	case 2:
		nx, ny := g.Shape[0], g.Shape[1]
		for iy := 0; iy < ny; iy++ {
			psi[iy] = 0
			psi[(nx-1)*ny+iy] = 0
		}
		for ix := 0; ix < nx; ix++ {
			psi[ix*ny] = 0
			psi[ix*ny+ny-1] = 0
		}
	}
}

type noBoundary struct{}

func (noBoundary) Name() string             { return "none" }
func (noBoundary) Apply(psi State, g *Grid) {}
