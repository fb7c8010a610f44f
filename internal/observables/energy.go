// Package observables provides probes that sample physical quantities
// from the evolving wavefunction and metrics that accumulate
// diagnostics over a whole run.
package observables

import (
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Energy samples the expectation value <psi|H|psi>.
type Energy struct {
	h quantum.State
}

func NewEnergy() *Energy {
	return &Energy{}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Sample(sys quantum.System, psi quantum.State, t float64) float64 {
	if len(e.h) != len(psi) {
		e.h = make(quantum.State, len(psi))
	}
	sys.Apply(e.h, psi)
	return real(sys.Grid().InnerProduct(psi, e.h))
}

// EnergyDrift tracks the worst relative deviation of the energy
// expectation from its first observed value.
type EnergyDrift struct {
	name    string
	sys     quantum.System
	initial float64
	max     float64
	samples int
	h       quantum.State
}

func NewEnergyDrift(sys quantum.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(psi quantum.State, t float64) {
	if len(e.h) != len(psi) {
		e.h = make(quantum.State, len(psi))
	}
	e.sys.Apply(e.h, psi)
	energy := real(e.sys.Grid().InnerProduct(psi, e.h))

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.max
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}
