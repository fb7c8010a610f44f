package scenarios

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// hermite evaluates the physicists' Hermite polynomial H_n by the
// recurrence H_{k+1} = 2x H_k - 2k H_{k-1}.
func hermite(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	h0, h1 := 1.0, 2*x
	for k := 2; k <= n; k++ {
		h0, h1 = h1, 2*x*h1-2*float64(k-1)*h0
	}
	return h1
}

// oscillatorState samples the n-th oscillator eigenfunction for
// spring constant k, up to normalization.
func oscillatorState(g *quantum.Grid, k float64, n int) quantum.State {
	omega := math.Sqrt(k / mass)
	alpha := mass * omega / hbar
	return g.Sample(func(c []float64) complex128 {
		x := c[0]
		return complex(hermite(n, math.Sqrt(alpha)*x)*math.Exp(-alpha*x*x/2), 0)
	})
}

func oscillatorScenario(name, description string, k float64, state func(g *quantum.Grid) quantum.State) *Scenario {
	const l = 1.0
	return &Scenario{
		Name:        name,
		Description: description,
		Dim:         1,
		Defaults: Defaults{
			Dt:         5e-3,
			Order:      70,
			Propagator: "taylor",
			Boundary:   "none",
			Steps:      1000,
		},
		View: View{
			Width:  960,
			Height: 540,
			Extent: [4]float64{-3 * l, 3 * l, 0, 1},
			Mode:   SquareModulus,
			Curves: []Curve{{
				Label: "V(0.3x)",
				F: func(x float64) float64 {
					return 0.5 * k * (0.3 * x) * (0.3 * x)
				},
				Color: [3]uint8{255, 255, 0},
			}},
		},
		Build: func() (*quantum.Schrodinger, quantum.State, error) {
			g, err := quantum.NewGrid(quantum.Span{Min: -3 * l, Max: 3 * l, Points: 200})
			if err != nil {
				return nil, nil, err
			}
			v := g.SampleReal(func(c []float64) float64 {
				return 0.5 * k * c[0] * c[0]
			})
			sys, err := quantum.NewSchrodinger(g, v)
			if err != nil {
				return nil, nil, err
			}
			psi := state(g)
			if err := g.Normalize(psi); err != nil {
				return nil, nil, err
			}
			return sys, psi, nil
		},
	}
}

// Harmonic is the n=2 eigenfunction of a k=5 oscillator. The density
// should hold still while the energy readout sits at
// hbar omega (n + 1/2), about 5.59.
func Harmonic() *Scenario {
	const k = 5.0
	return oscillatorScenario(
		"harmonic",
		"harmonic oscillator eigenfunction n=2, k=5",
		k,
		func(g *quantum.Grid) quantum.State {
			return oscillatorState(g, k, 2)
		},
	)
}

// HarmonicSuperposition mixes the n=1 and n=2 eigenfunctions of a
// k=4 oscillator, so the density sloshes at the beat frequency omega.
func HarmonicSuperposition() *Scenario {
	const k = 4.0
	return oscillatorScenario(
		"harmonic-superposition",
		"superposed n=1 and n=2 oscillator eigenfunctions, k=4",
		k,
		func(g *quantum.Grid) quantum.State {
			a := oscillatorState(g, k, 1)
			b := oscillatorState(g, k, 2)
			for i := range a {
				a[i] += b[i]
			}
			return a
		},
	)
}
