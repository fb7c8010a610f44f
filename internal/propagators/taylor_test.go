package propagators

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// wellEigenstate samples sin(n pi x / L) on a free-particle grid over
// [0, L]. It is an exact eigenvector of the discrete Hamiltonian with
// eigenvalue 2 sin^2(k dx/2)/dx^2 for hbar = m = 1.
func wellEigenstate(t testing.TB, points, n int) (*quantum.Schrodinger, quantum.State, float64) {
	t.Helper()
	g, err := quantum.NewGrid(quantum.Span{Min: 0, Max: 1, Points: points})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	sys, err := quantum.NewSchrodinger(g, nil)
	if err != nil {
		t.Fatalf("NewSchrodinger failed: %v", err)
	}

	k := float64(n) * math.Pi
	psi := g.Sample(func(c []float64) complex128 {
		return complex(math.Sin(k*c[0]), 0)
	})
	dx := g.Deltas[0]
	e := 2 * math.Pow(math.Sin(k*dx/2), 2) / (dx * dx)
	return sys, psi, e
}

func maxPointDiff(a, b quantum.State) float64 {
	max := 0.0
	for i := range a {
		if d := cmplx.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

func TestTaylorEigenstatePhase(t *testing.T) {
	sys, psi, e := wellEigenstate(t, 50, 1)
	dt := 5e-3

	got := NewTaylor(70).Step(sys, psi, dt)

	// An eigenstate only picks up the phase exp(-i E dt).
	factor := cmplx.Exp(complex(0, -e*dt))
	want := psi.Clone()
	want.Scale(factor)
	if d := maxPointDiff(got, want); d > 1e-12 {
		t.Errorf("max deviation from exact phase: got %g, expected < 1e-12", d)
	}
}

func TestTaylorOrderOneMatchesEuler(t *testing.T) {
	sys, psi, _ := wellEigenstate(t, 30, 2)
	dt := 1e-3

	taylor := NewTaylor(1).Step(sys, psi, dt)
	euler := NewEuler().Step(sys, psi, dt)

	if d := maxPointDiff(taylor, euler); d > 1e-14 {
		t.Errorf("order-1 Taylor diverges from Euler by %g", d)
	}
}

func TestTaylorOrderFloor(t *testing.T) {
	if p := NewTaylor(0); p.Order != 1 {
		t.Errorf("order floor: got %d, expected 1", p.Order)
	}
	if p := NewTaylor(-5); p.Order != 1 {
		t.Errorf("order floor: got %d, expected 1", p.Order)
	}
}

func TestTaylorDoesNotMutateInput(t *testing.T) {
	sys, psi, _ := wellEigenstate(t, 40, 1)
	before := psi.Clone()

	NewTaylor(10).Step(sys, psi, 5e-3)

	for i := range psi {
		if psi[i] != before[i] {
			t.Fatalf("input state mutated at %d: %v -> %v", i, before[i], psi[i])
		}
	}
}

func TestSchemesAgreeOnSmallStep(t *testing.T) {
	g, _ := quantum.NewGrid(quantum.Span{Min: 0, Max: 1, Points: 50})
	sys, _ := quantum.NewSchrodinger(g, nil)
	psi := g.Sample(func(c []float64) complex128 {
		return complex(math.Sin(math.Pi*c[0])+math.Sin(2*math.Pi*c[0]), 0)
	})
	if err := g.Normalize(psi); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	dt := 1e-3

	taylor := NewTaylor(30).Step(sys, psi, dt)
	cn := NewCrankNicolson().Step(sys, psi, dt)
	vis := NewVisscher().Step(sys, psi, dt)

	if d := maxPointDiff(taylor, cn); d > 1e-5 {
		t.Errorf("taylor vs crank-nicolson: max diff %g", d)
	}
	if d := maxPointDiff(taylor, vis); d > 1e-5 {
		t.Errorf("taylor vs visscher: max diff %g", d)
	}
}
