package observables

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Norm samples sqrt(<psi|psi>). With per-step renormalization on it
// stays pinned at 1; with it off it exposes how much a scheme leaks.
type Norm struct {
	dens []float64
}

func NewNorm() *Norm {
	return &Norm{}
}

func (n *Norm) Name() string { return "norm" }

func (n *Norm) Sample(sys quantum.System, psi quantum.State, t float64) float64 {
	n.dens = psi.SquareModulus(n.dens)
	return math.Sqrt(sys.Grid().Integrate(n.dens))
}

// NormDrift tracks the worst deviation of the norm from 1.
type NormDrift struct {
	name string
	grid *quantum.Grid
	max  float64
	dens []float64
}

func NewNormDrift(g *quantum.Grid) *NormDrift {
	return &NormDrift{
		name: "norm_drift",
		grid: g,
	}
}

func (n *NormDrift) Name() string { return n.name }

func (n *NormDrift) Observe(psi quantum.State, t float64) {
	n.dens = psi.SquareModulus(n.dens)
	drift := math.Abs(math.Sqrt(n.grid.Integrate(n.dens)) - 1)
	n.max = math.Max(n.max, drift)
}

func (n *NormDrift) Value() float64 {
	return n.max
}

func (n *NormDrift) Reset() {
	n.max = 0
}
