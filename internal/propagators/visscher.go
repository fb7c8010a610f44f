package propagators

import "github.com/Sciguy324/QuantumSimulator/internal/quantum"

// Visscher splits the state into real and imaginary parts and applies
// a kick-drift-kick update:
//
//	I -= dt/(2 hbar) H R
//	R += dt/hbar     H I
//	I -= dt/(2 hbar) H R
//
// The scheme is symplectic and stable while dt*E_max/hbar < 2, which
// on fine grids forces a much smaller dt than the Taylor propagator.
type Visscher struct {
	re, im, h []float64
	in, out   quantum.State
}

func NewVisscher() *Visscher {
	return &Visscher{}
}

func (p *Visscher) Name() string { return "visscher" }

func (p *Visscher) ensureScratch(n int) {
	if len(p.re) != n {
		p.re = make([]float64, n)
		p.im = make([]float64, n)
		p.h = make([]float64, n)
		p.in = make(quantum.State, n)
		p.out = make(quantum.State, n)
	}
}

// applyReal evaluates H on a real field. The Hamiltonian is real for
// real potentials, so the imaginary part of the output is discarded.
func (p *Visscher) applyReal(sys quantum.System, src []float64) {
	for i := range src {
		p.in[i] = complex(src[i], 0)
	}
	sys.Apply(p.out, p.in)
	for i := range p.h {
		p.h[i] = real(p.out[i])
	}
}

func (p *Visscher) Step(sys quantum.System, psi quantum.State, dt float64) quantum.State {
	n := len(psi)
	p.ensureScratch(n)

	for i := 0; i < n; i++ {
		p.re[i] = real(psi[i])
		p.im[i] = imag(psi[i])
	}

	hbar := sys.Hbar()
	half := dt / (2 * hbar)
	full := dt / hbar

	p.applyReal(sys, p.re)
	for i := 0; i < n; i++ {
		p.im[i] -= half * p.h[i]
	}
	p.applyReal(sys, p.im)
	for i := 0; i < n; i++ {
		p.re[i] += full * p.h[i]
	}
	p.applyReal(sys, p.re)
	for i := 0; i < n; i++ {
		p.im[i] -= half * p.h[i]
	}

	result := make(quantum.State, n)
	for i := 0; i < n; i++ {
		result[i] = complex(p.re[i], p.im[i])
	}
	return result
}
