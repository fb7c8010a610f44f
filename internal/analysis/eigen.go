package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// EigenResult holds the lowest eigenpairs of a discretized
// one-dimensional Hamiltonian.
type EigenResult struct {
	Energies []float64
	States   []quantum.State
}

// Eigenstates diagonalizes the interior of a one-dimensional
// Hamiltonian, with the wavefunction pinned to zero at both ends, and
// returns the k lowest pairs. Each state is normalized on the grid and
// its largest component made positive.
func Eigenstates(sys *quantum.Schrodinger, k int) (*EigenResult, error) {
	g := sys.Grid()
	if g.Dim() != 1 {
		return nil, fmt.Errorf("eigenstates need a 1D grid: %w", quantum.ErrDimension)
	}
	m := g.Shape[0] - 2
	if k < 1 || k > m {
		return nil, fmt.Errorf("requested %d eigenpairs from %d interior points: %w", k, m, quantum.ErrInvalidConfig)
	}

	dx := g.Deltas[0]
	kin := sys.Hbar() * sys.Hbar() / (2 * sys.Mass() * dx * dx)
	v := sys.Potential()

	h := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		h.SetSym(i, i, 2*kin+v[i+1])
		if i+1 < m {
			h.SetSym(i, i+1, -kin)
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(h, true) {
		return nil, fmt.Errorf("eigendecomposition did not converge")
	}

	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	res := &EigenResult{
		Energies: make([]float64, k),
		States:   make([]quantum.State, k),
	}
	for j := 0; j < k; j++ {
		res.Energies[j] = vals[j]

		psi := make(quantum.State, g.Shape[0])
		peak := 0.0
		for i := 0; i < m; i++ {
			val := vecs.At(i, j)
			psi[i+1] = complex(val, 0)
			if val*val > peak*peak {
				peak = val
			}
		}
		if peak < 0 {
			psi.Scale(-1)
		}
		if err := g.Normalize(psi); err != nil {
			return nil, err
		}
		res.States[j] = psi
	}
	return res, nil
}
