package observables

import "github.com/Sciguy324/QuantumSimulator/internal/quantum"

// Overlap samples |<ref|psi>|^2 against a reference state, typically
// the initial one. For an eigenstate it stays at 1; for a superposition
// it beats at the energy gaps.
type Overlap struct {
	name string
	ref  quantum.State
}

func NewOverlap(ref quantum.State) *Overlap {
	return &Overlap{
		name: "overlap",
		ref:  ref.Clone(),
	}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Sample(sys quantum.System, psi quantum.State, t float64) float64 {
	if len(o.ref) != len(psi) {
		return 0
	}
	ip := sys.Grid().InnerProduct(o.ref, psi)
	re, im := real(ip), imag(ip)
	return re*re + im*im
}
