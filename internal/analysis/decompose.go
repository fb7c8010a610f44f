package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Component is one eigenbasis term of a decomposition.
type Component struct {
	Index       int // 1-based mode number
	Energy      float64
	Coefficient complex128
	Probability float64
}

// Decompose projects a state onto the k lowest eigenstates of its
// Hamiltonian. Components come back in energy order.
func Decompose(sys *quantum.Schrodinger, psi quantum.State, k int) ([]Component, error) {
	if len(psi) != sys.Grid().Size() {
		return nil, fmt.Errorf("state has %d points, grid has %d: %w", len(psi), sys.Grid().Size(), quantum.ErrGridMismatch)
	}

	basis, err := Eigenstates(sys, k)
	if err != nil {
		return nil, err
	}

	comps := make([]Component, k)
	for j, phi := range basis.States {
		c := sys.Grid().InnerProduct(phi, psi)
		re, im := real(c), imag(c)
		comps[j] = Component{
			Index:       j + 1,
			Energy:      basis.Energies[j],
			Coefficient: c,
			Probability: re*re + im*im,
		}
	}
	return comps, nil
}

// Ket renders the components above threshold as a ket sum, e.g.
// "0.707|1> + 0.707|2>".
func Ket(comps []Component, threshold float64) string {
	var b strings.Builder
	for _, c := range comps {
		if c.Probability < threshold {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%.3f|%d>", math.Sqrt(c.Probability), c.Index)
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
