package scenarios

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// PointCharge drops a p-like orbital into an attractive Coulomb well.
// The potential is softened near the origin to keep it finite on the
// grid.
func PointCharge() *Scenario {
	const (
		l = 1.0
		a = 1.0
	)
	return &Scenario{
		Name:        "pointcharge",
		Description: "orbital in a softened Coulomb potential",
		Dim:         2,
		Defaults: Defaults{
			Dt:         5e-3,
			Order:      30,
			Propagator: "taylor",
			Boundary:   "none",
			Steps:      500,
		},
		View: View{
			Width:  500,
			Height: 500,
			Extent: [4]float64{-2 * l, 2 * l, -2 * l, 2 * l},
			VMin:   0,
			VMax:   1,
			Mode:   SquareModulus,
		},
		Build: func() (*quantum.Schrodinger, quantum.State, error) {
			g, err := quantum.NewGrid(
				quantum.Span{Min: -3 * l, Max: 3 * l, Points: 80},
				quantum.Span{Min: -3 * l, Max: 3 * l, Points: 80},
			)
			if err != nil {
				return nil, nil, err
			}
			v := g.SampleReal(func(c []float64) float64 {
				r := math.Hypot(c[0], c[1])
				return -5 / (r + 0.001)
			})
			sys, err := quantum.NewSchrodinger(g, v)
			if err != nil {
				return nil, nil, err
			}
			psi := g.Sample(func(c []float64) complex128 {
				x, y := c[0], c[1]
				r := math.Hypot(x, y)
				theta := math.Atan2(x, y)
				return complex(math.Exp(-0.5*r/a)*math.Cos(theta), 0)
			})
			if err := g.Normalize(psi); err != nil {
				return nil, nil, err
			}
			return sys, psi, nil
		},
	}
}
