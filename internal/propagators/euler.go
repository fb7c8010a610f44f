package propagators

import "github.com/Sciguy324/QuantumSimulator/internal/quantum"

// Euler is the explicit first-order scheme. It is cheap and
// unconditionally drifts, so it is only useful as a baseline.
type Euler struct {
	hpsi quantum.State
}

func NewEuler() *Euler {
	return &Euler{}
}

func (p *Euler) Name() string { return "euler" }

func (p *Euler) Step(sys quantum.System, psi quantum.State, dt float64) quantum.State {
	n := len(psi)
	if len(p.hpsi) != n {
		p.hpsi = make(quantum.State, n)
	}
	sys.Apply(p.hpsi, psi)

	f := complex(0, -dt/sys.Hbar())
	result := make(quantum.State, n)
	for i := 0; i < n; i++ {
		result[i] = psi[i] + f*p.hpsi[i]
	}
	return result
}
