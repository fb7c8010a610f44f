package scenarios

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// DoubleSlit fires a Gaussian packet at a wall with two openings.
// The barrier spans the band |y| < 0.1 L with slits between
// 0.05 L < |x| < 0.2 L; everything else in the band is a hard wall.
// The view starts paused so the initial packet is visible.
func DoubleSlit() *Scenario {
	const (
		l    = 2.0
		beta = 1.0
		p0   = -5.0
	)
	barrier := func(x, y float64) bool {
		if y <= -0.1*l || y >= 0.1*l {
			return false
		}
		return x < -0.2*l || x > 0.2*l || (-0.05*l < x && x < 0.05*l)
	}
	return &Scenario{
		Name:        "doubleslit",
		Description: "wave packet on a double slit",
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
			Extent: [4]float64{-l, l, -l, l},
			VMin:   0,
			VMax:   1,
			Mode:   SquareModulus,
			Boxes: []Box{
				{X0: -l, Y0: -0.1 * l, X1: -0.2 * l, Y1: 0.1 * l, Color: [3]uint8{0, 0, 0}},
				{X0: 0.2 * l, Y0: -0.1 * l, X1: l, Y1: 0.1 * l, Color: [3]uint8{0, 0, 0}},
				{X0: -0.05 * l, Y0: -0.1 * l, X1: 0.05 * l, Y1: 0.1 * l, Color: [3]uint8{0, 0, 0}},
			},
			StartPaused: true,
		},
		Build: func() (*quantum.Schrodinger, quantum.State, error) {
			g, err := quantum.NewGrid(
				quantum.Span{Min: -l, Max: l, Points: 50},
				quantum.Span{Min: -l, Max: l, Points: 50},
			)
			if err != nil {
				return nil, nil, err
			}
			v := g.SampleReal(func(c []float64) float64 {
				if barrier(c[0], c[1]) {
					return 100
				}
				return 0
			})
			sys, err := quantum.NewSchrodinger(g, v)
			if err != nil {
				return nil, nil, err
			}
			psi := g.Sample(func(c []float64) complex128 {
				x, y := c[0], c[1]
				r2 := x*x + (y-0.5*l)*(y-0.5*l)
				phase := p0 * y / hbar
				env := math.Exp(-r2 * beta / (hbar * hbar))
				return complex(env*math.Cos(phase), env*math.Sin(phase))
			})
			if err := g.Normalize(psi); err != nil {
				return nil, nil, err
			}
			return sys, psi, nil
		},
	}
}
