// Package scenarios bundles ready-to-run quantum systems: grids,
// potentials, initial states, and the numerical and presentation
// settings each one was tuned with.
package scenarios

import (
	"fmt"
	"sort"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// All bundled scenarios use natural units.
const (
	hbar = 1.0
	mass = 1.0
)

// RenderMode selects the scalar field the viewers display.
type RenderMode string

const (
	SquareModulus RenderMode = "square-modulus"
	RealPart      RenderMode = "real"
	ImaginaryPart RenderMode = "imag"
)

// Curve is a reference line drawn over a one-dimensional view.
type Curve struct {
	Label string
	F     func(x float64) float64
	Color [3]uint8
}

// Box is a rectangle drawn over a two-dimensional view, given in
// simulation coordinates.
type Box struct {
	X0, Y0, X1, Y1 float64
	Color          [3]uint8
}

// View carries the presentation defaults of a scenario: window size,
// axis extent, color range, and any static overlays.
type View struct {
	Width, Height int
	Extent        [4]float64 // xlo, xhi, ylo, yhi
	VMin, VMax    float64
	Mode          RenderMode
	Curves        []Curve
	Boxes         []Box
	StartPaused   bool
}

// Defaults are the numerical settings a scenario was designed around.
type Defaults struct {
	Dt         float64
	Order      int
	Propagator string
	Boundary   string
	Steps      int
}

// Scenario couples an initial-value problem with its settings.
type Scenario struct {
	Name        string
	Description string
	Dim         int
	Defaults    Defaults
	View        View
	Build       func() (*quantum.Schrodinger, quantum.State, error)
}

var builders = map[string]func() *Scenario{
	"harmonic":               Harmonic,
	"harmonic-superposition": HarmonicSuperposition,
	"well":                   Well,
	"well2d":                 Well2D,
	"pointcharge":            PointCharge,
	"doubleslit":             DoubleSlit,
	"gaussian":               Gaussian,
}

// Get builds the named scenario.
func Get(name string) (*Scenario, error) {
	fn, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q: %w", name, quantum.ErrInvalidConfig)
	}
	return fn(), nil
}

// Names lists the bundled scenarios in stable order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
