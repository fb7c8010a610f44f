package observables

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

func axisLabel(axis int) string {
	if axis == 1 {
		return "y"
	}
	return "x"
}

// weightByAxis multiplies src pointwise by the coordinate along the
// given axis. Applying it twice yields coordinate-squared weighting.
func weightByAxis(g *quantum.Grid, axis int, src, dst []float64) []float64 {
	if len(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	switch g.Dim() {
	case 1:
		for i, x := range g.Axes[0] {
			dst[i] = x * src[i]
		}
	case 2:
		ny := g.Shape[1]
		for ix := 0; ix < g.Shape[0]; ix++ {
			row := ix * ny
			for iy := 0; iy < ny; iy++ {
				c := g.Axes[1][iy]
				if axis == 0 {
					c = g.Axes[0][ix]
				}
				dst[row+iy] = c * src[row+iy]
			}
		}
	}
	return dst
}

// Position samples the expectation value of the coordinate along one
// axis (0 for x, 1 for y).
type Position struct {
	name string
	axis int
	dens []float64
	wtd  []float64
}

func NewPosition(axis int) *Position {
	return &Position{
		name: "position_" + axisLabel(axis),
		axis: axis,
	}
}

func (p *Position) Name() string { return p.name }

func (p *Position) Sample(sys quantum.System, psi quantum.State, t float64) float64 {
	g := sys.Grid()
	if p.axis >= g.Dim() {
		return 0
	}
	p.dens = psi.SquareModulus(p.dens)
	p.wtd = weightByAxis(g, p.axis, p.dens, p.wtd)
	return g.Integrate(p.wtd)
}

// Spread samples the position uncertainty sqrt(<x^2> - <x>^2) along
// one axis.
type Spread struct {
	name string
	axis int
	dens []float64
	w1   []float64
	w2   []float64
}

func NewSpread(axis int) *Spread {
	return &Spread{
		name: "spread_" + axisLabel(axis),
		axis: axis,
	}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Sample(sys quantum.System, psi quantum.State, t float64) float64 {
	g := sys.Grid()
	if s.axis >= g.Dim() {
		return 0
	}
	s.dens = psi.SquareModulus(s.dens)
	s.w1 = weightByAxis(g, s.axis, s.dens, s.w1)
	mean := g.Integrate(s.w1)
	s.w2 = weightByAxis(g, s.axis, s.w1, s.w2)
	meanSq := g.Integrate(s.w2)

	variance := meanSq - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
