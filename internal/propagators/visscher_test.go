package propagators

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

func TestVisscherEigenstateRotation(t *testing.T) {
	sys, psi, e := wellEigenstate(t, 50, 1)
	dt := 1e-4

	got := NewVisscher().Step(sys, psi, dt)

	// One kick-drift-kick step reproduces the exact rotation up to a
	// phase error of order (E dt)^3.
	factor := cmplx.Exp(complex(0, -e*dt))
	want := psi.Clone()
	want.Scale(factor)
	if d := maxPointDiff(got, want); d > 1e-9 {
		t.Errorf("max deviation from exact rotation: got %g, expected < 1e-9", d)
	}
}

func TestVisscherStableManySteps(t *testing.T) {
	sys, psi, _ := wellEigenstate(t, 50, 2)
	g := sys.Grid()
	if err := g.Normalize(psi); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Every discrete mode must sit inside the stability window
	// dt < 2 hbar / E_max with E_max = 2/dx^2, so dt = 1e-4 leaves a
	// factor of four of headroom on this grid.
	dt := 1e-4
	p := NewVisscher()
	for i := 0; i < 200; i++ {
		psi = p.Step(sys, psi, dt)
	}

	if !psi.IsValid() {
		t.Fatal("state became non-finite")
	}
	norm := g.Norm(psi)
	if math.Abs(norm-1) > 1e-3 {
		t.Errorf("norm after 200 steps: got %.6f, expected 1", norm)
	}
}
