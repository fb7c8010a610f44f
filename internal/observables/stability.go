package observables

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Stability reports the fraction of observations where the state was
// finite and its norm stayed within threshold of 1. A value below 1
// flags a dt/order combination the scheme could not hold.
type Stability struct {
	name       string
	grid       *quantum.Grid
	threshold  float64
	violations int
	samples    int
	dens       []float64
}

func NewStability(g *quantum.Grid, threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		grid:      g,
		threshold: threshold,
	}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(psi quantum.State, t float64) {
	s.samples++
	if !psi.IsValid() {
		s.violations++
		return
	}
	s.dens = psi.SquareModulus(s.dens)
	if math.Abs(math.Sqrt(s.grid.Integrate(s.dens))-1) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
