package propagators

import "github.com/Sciguy324/QuantumSimulator/internal/quantum"

// Taylor advances the state by the truncated series
//
//	psi(t+dt) = sum_{n=0}^{order} (1/n!) (-i dt/hbar)^n H^n psi(t)
//
// H^n psi is built incrementally, so one step costs order
// applications of the Hamiltonian.
type Taylor struct {
	Order int

	buf  quantum.State
	hbuf quantum.State
}

func NewTaylor(order int) *Taylor {
	if order < 1 {
		order = 1
	}
	return &Taylor{Order: order}
}

func (p *Taylor) Name() string { return "taylor" }

func (p *Taylor) ensureScratch(n int) {
	if len(p.buf) != n {
		p.buf = make(quantum.State, n)
		p.hbuf = make(quantum.State, n)
	}
}

func (p *Taylor) Step(sys quantum.System, psi quantum.State, dt float64) quantum.State {
	n := len(psi)
	p.ensureScratch(n)

	result := psi.Clone()
	copy(p.buf, psi)

	factor := complex(0, -dt/sys.Hbar())
	c := complex(1, 0)
	for k := 1; k <= p.Order; k++ {
		sys.Apply(p.hbuf, p.buf)
		p.buf, p.hbuf = p.hbuf, p.buf
		c *= factor / complex(float64(k), 0)
		for i := 0; i < n; i++ {
			result[i] += c * p.buf[i]
		}
	}
	return result
}
