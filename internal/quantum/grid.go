package quantum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Span describes one axis of a grid: Points evenly spaced samples
// covering [Min, Max] inclusive.
type Span struct {
	Min    float64
	Max    float64
	Points int
}

// Grid is a uniform spatial discretization over one or two axes.
type Grid struct {
	Shape  []int
	Axes   [][]float64
	Deltas []float64
}

// Linspace returns n evenly spaced values covering [min, max] inclusive.
func Linspace(min, max float64, n int) []float64 {
	xs := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range xs {
		xs[i] = min + float64(i)*step
	}
	xs[n-1] = max
	return xs
}

// NewGrid builds a grid from one span per axis. Only 1D and 2D grids
// are supported; each axis needs at least 3 points for the central
// difference stencil.
func NewGrid(spans ...Span) (*Grid, error) {
	if len(spans) < 1 || len(spans) > 2 {
		return nil, fmt.Errorf("%w: got %d axes", ErrDimension, len(spans))
	}
	g := &Grid{
		Shape:  make([]int, len(spans)),
		Axes:   make([][]float64, len(spans)),
		Deltas: make([]float64, len(spans)),
	}
	for i, s := range spans {
		if s.Points < 3 {
			return nil, fmt.Errorf("%w: axis %d has %d points, need at least 3", ErrInvalidConfig, i, s.Points)
		}
		if !(s.Max > s.Min) {
			return nil, fmt.Errorf("%w: axis %d span [%g, %g]", ErrInvalidConfig, i, s.Min, s.Max)
		}
		g.Shape[i] = s.Points
		g.Axes[i] = Linspace(s.Min, s.Max, s.Points)
		g.Deltas[i] = (s.Max - s.Min) / float64(s.Points-1)
	}
	return g, nil
}

func (g *Grid) Dim() int { return len(g.Shape) }

// Size returns the total number of grid points.
func (g *Grid) Size() int {
	n := 1
	for _, s := range g.Shape {
		n *= s
	}
	return n
}

// Index flattens multi-axis indices row-major (first axis outermost).
func (g *Grid) Index(ix ...int) int {
	idx := 0
	for axis, i := range ix {
		idx = idx*g.Shape[axis] + i
	}
	return idx
}

// Sample evaluates f at every grid point and returns the resulting
// state. The coordinate slice passed to f is reused between calls.
func (g *Grid) Sample(f func(x []float64) complex128) State {
	psi := make(State, g.Size())
	coords := make([]float64, g.Dim())
	switch g.Dim() {
	case 1:
		for i, x := range g.Axes[0] {
			coords[0] = x
			psi[i] = f(coords)
		}
	case 2:
		ny := g.Shape[1]
		for ix, x := range g.Axes[0] {
			coords[0] = x
			row := ix * ny
			for iy, y := range g.Axes[1] {
				coords[1] = y
				psi[row+iy] = f(coords)
			}
		}
	}
	return psi
}

// SampleReal evaluates a real-valued field (such as a potential) at
// every grid point.
func (g *Grid) SampleReal(f func(x []float64) float64) []float64 {
	v := make([]float64, g.Size())
	psi := g.Sample(func(x []float64) complex128 {
		return complex(f(x), 0)
	})
	for i, c := range psi {
		v[i] = real(c)
	}
	return v
}

// Integrate reduces vals over every axis with the trapezoidal rule,
// axis 0 first, matching repeated one-axis quadrature.
func (g *Grid) Integrate(vals []float64) float64 {
	cur := vals
	for axis := 0; axis < len(g.Shape); axis++ {
		n0 := g.Shape[axis]
		rest := len(cur) / n0
		if rest == 1 {
			return integrate.Trapezoidal(g.Axes[axis], cur)
		}
		out := make([]float64, rest)
		col := make([]float64, n0)
		for j := 0; j < rest; j++ {
			for i := 0; i < n0; i++ {
				col[i] = cur[i*rest+j]
			}
			out[j] = integrate.Trapezoidal(g.Axes[axis], col)
		}
		cur = out
	}
	return cur[0]
}

// InnerProduct returns <a|b>, the trapezoid quadrature of conj(a)*b.
func (g *Grid) InnerProduct(a, b State) complex128 {
	re := make([]float64, len(a))
	im := make([]float64, len(a))
	for i := range a {
		ar, ai := real(a[i]), imag(a[i])
		br, bi := real(b[i]), imag(b[i])
		re[i] = ar*br + ai*bi
		im[i] = ar*bi - ai*br
	}
	return complex(g.Integrate(re), g.Integrate(im))
}

// Norm returns sqrt(<psi|psi>).
func (g *Grid) Norm(psi State) float64 {
	return math.Sqrt(g.Integrate(psi.SquareModulus(nil)))
}

// Normalize scales psi in place so that <psi|psi> = 1.
func (g *Grid) Normalize(psi State) error {
	if len(psi) != g.Size() {
		return ErrGridMismatch
	}
	n := g.Norm(psi)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return ErrNotNormalizable
	}
	psi.Scale(complex(1/n, 0))
	return nil
}
