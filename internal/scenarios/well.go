package scenarios

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Well is the infinite square well with the two lowest modes
// superposed. The density oscillates between the walls.
func Well() *Scenario {
	const l = 1.0
	return &Scenario{
		Name:        "well",
		Description: "particle in a box, modes 1+2 superposed",
		Dim:         1,
		Defaults: Defaults{
			Dt:         5e-3,
			Order:      70,
			Propagator: "taylor",
			Boundary:   "dirichlet",
			Steps:      1000,
		},
		View: View{
			Width:  640,
			Height: 480,
			Extent: [4]float64{0, l, 0, 5},
			Mode:   SquareModulus,
		},
		Build: func() (*quantum.Schrodinger, quantum.State, error) {
			g, err := quantum.NewGrid(quantum.Span{Min: 0, Max: l, Points: 50})
			if err != nil {
				return nil, nil, err
			}
			sys, err := quantum.NewSchrodinger(g, nil)
			if err != nil {
				return nil, nil, err
			}
			norm := math.Sqrt(2 / l)
			psi := g.Sample(func(c []float64) complex128 {
				x := c[0]
				return complex(norm*(math.Sin(math.Pi*x/l)+math.Sin(2*math.Pi*x/l)), 0)
			})
			if err := g.Normalize(psi); err != nil {
				return nil, nil, err
			}
			return sys, psi, nil
		},
	}
}

// Well2D is the two-dimensional box with the (1,1) and (2,2) modes
// superposed.
func Well2D() *Scenario {
	const l = 1.0
	basis := func(x, y float64, n1, n2 int) float64 {
		return math.Sin(math.Pi*x*float64(n1)/l) * math.Sin(math.Pi*y*float64(n2)/l)
	}
	return &Scenario{
		Name:        "well2d",
		Description: "2D box, modes (1,1)+(2,2) superposed",
		Dim:         2,
		Defaults: Defaults{
			Dt:         5e-3,
			Order:      50,
			Propagator: "taylor",
			Boundary:   "dirichlet",
			Steps:      500,
		},
		View: View{
			Width:  500,
			Height: 500,
			Extent: [4]float64{0, l, 0, l},
			VMin:   0,
			VMax:   2,
			Mode:   SquareModulus,
		},
		Build: func() (*quantum.Schrodinger, quantum.State, error) {
			g, err := quantum.NewGrid(
				quantum.Span{Min: 0, Max: l, Points: 30},
				quantum.Span{Min: 0, Max: l, Points: 30},
			)
			if err != nil {
				return nil, nil, err
			}
			sys, err := quantum.NewSchrodinger(g, nil)
			if err != nil {
				return nil, nil, err
			}
			psi := g.Sample(func(c []float64) complex128 {
				return complex(basis(c[0], c[1], 1, 1)+basis(c[0], c[1], 2, 2), 0)
			})
			if err := g.Normalize(psi); err != nil {
				return nil, nil, err
			}
			return sys, psi, nil
		},
	}
}
