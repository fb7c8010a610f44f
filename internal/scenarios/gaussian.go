package scenarios

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Gaussian releases a moving wave packet inside a hard-walled box.
// The packet disperses as it travels and reflects off the walls.
func Gaussian() *Scenario {
	const (
		l     = 4.0
		x0    = -2.0
		sigma = 0.4
		p0    = 12.0
	)
	return &Scenario{
		Name:        "gaussian",
		Description: "free wave packet bouncing in a box",
		Dim:         1,
		Defaults: Defaults{
			Dt:         5e-3,
			Order:      70,
			Propagator: "taylor",
			Boundary:   "dirichlet",
			Steps:      1000,
		},
		View: View{
			Width:  960,
			Height: 540,
			Extent: [4]float64{-l, l, 0, 2},
			Mode:   SquareModulus,
		},
		Build: func() (*quantum.Schrodinger, quantum.State, error) {
			g, err := quantum.NewGrid(quantum.Span{Min: -l, Max: l, Points: 200})
			if err != nil {
				return nil, nil, err
			}
			sys, err := quantum.NewSchrodinger(g, nil)
			if err != nil {
				return nil, nil, err
			}
			psi := g.Sample(func(c []float64) complex128 {
				x := c[0]
				env := math.Exp(-(x - x0) * (x - x0) / (2 * sigma * sigma))
				phase := p0 * x / hbar
				return complex(env*math.Cos(phase), env*math.Sin(phase))
			})
			if err := g.Normalize(psi); err != nil {
				return nil, nil, err
			}
			return sys, psi, nil
		},
	}
}
