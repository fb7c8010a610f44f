package observables

import (
	"math"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

func wellSystem(t testing.TB, points int) (*quantum.Schrodinger, *quantum.Grid) {
	t.Helper()
	g, err := quantum.NewGrid(quantum.Span{Min: 0, Max: 1, Points: points})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	sys, err := quantum.NewSchrodinger(g, nil)
	if err != nil {
		t.Fatalf("NewSchrodinger failed: %v", err)
	}
	return sys, g
}

func wellMode(t testing.TB, g *quantum.Grid, n int) quantum.State {
	t.Helper()
	psi := g.Sample(func(x []float64) complex128 {
		return complex(math.Sin(float64(n)*math.Pi*x[0]), 0)
	})
	if err := g.Normalize(psi); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return psi
}

// modeEnergy is the eigenvalue of the discrete sine mode n on the
// unit-box grid: 2 sin^2(n pi dx / 2) / dx^2.
func modeEnergy(g *quantum.Grid, n int) float64 {
	dx := g.Deltas[0]
	s := math.Sin(float64(n) * math.Pi * dx / 2)
	return 2 * s * s / (dx * dx)
}

func TestNormProbe(t *testing.T) {
	sys, g := wellSystem(t, 50)
	psi := wellMode(t, g, 1)

	probe := NewNorm()
	if got := probe.Sample(sys, psi, 0); math.Abs(got-1) > 1e-12 {
		t.Errorf("norm of normalized state: got %g, expected 1", got)
	}

	psi.Scale(1.25)
	if got := probe.Sample(sys, psi, 0); math.Abs(got-1.25) > 1e-12 {
		t.Errorf("norm of scaled state: got %g, expected 1.25", got)
	}
}

func TestNormDrift(t *testing.T) {
	_, g := wellSystem(t, 50)
	psi := wellMode(t, g, 1)

	m := NewNormDrift(g)

	m.Observe(psi, 0)
	if m.Value() > 1e-12 {
		t.Errorf("drift after normalized state: got %g", m.Value())
	}

	grown := psi.Clone()
	grown.Scale(1.1)
	m.Observe(grown, 1)
	if math.Abs(m.Value()-0.1) > 1e-9 {
		t.Errorf("drift after 1.1x state: got %g, expected 0.1", m.Value())
	}

	m.Observe(psi, 2)
	if math.Abs(m.Value()-0.1) > 1e-9 {
		t.Error("drift should keep its maximum")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestOverlap(t *testing.T) {
	sys, g := wellSystem(t, 50)
	mode1 := wellMode(t, g, 1)
	mode2 := wellMode(t, g, 2)

	probe := NewOverlap(mode1)

	if got := probe.Sample(sys, mode1, 0); math.Abs(got-1) > 1e-12 {
		t.Errorf("self overlap: got %g, expected 1", got)
	}
	if got := probe.Sample(sys, mode2, 0); math.Abs(got) > 1e-12 {
		t.Errorf("orthogonal mode overlap: got %g, expected 0", got)
	}
	if got := probe.Sample(sys, make(quantum.State, 7), 0); got != 0 {
		t.Errorf("mismatched length overlap: got %g, expected 0", got)
	}
}

func TestOverlapKeepsReferenceIndependent(t *testing.T) {
	sys, g := wellSystem(t, 50)
	psi := wellMode(t, g, 1)

	probe := NewOverlap(psi)
	psi.Scale(0)

	other := wellMode(t, g, 1)
	if got := probe.Sample(sys, other, 0); math.Abs(got-1) > 1e-12 {
		t.Errorf("reference should be cloned at construction: got %g", got)
	}
}

func TestStability(t *testing.T) {
	_, g := wellSystem(t, 50)
	psi := wellMode(t, g, 1)

	m := NewStability(g, 1e-3)
	if m.Value() != 1.0 {
		t.Errorf("fresh stability: got %g, expected 1", m.Value())
	}

	m.Observe(psi, 0)

	grown := psi.Clone()
	grown.Scale(2)
	m.Observe(grown, 1)

	bad := psi.Clone()
	bad[0] = complex(math.NaN(), 0)
	m.Observe(bad, 2)

	want := 1.0 / 3.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("stability: got %g, expected %g", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Error("expected full stability after reset")
	}
}
