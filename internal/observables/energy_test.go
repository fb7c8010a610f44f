package observables

import (
	"math"
	"testing"
)

func TestEnergyProbeMatchesDiscreteMode(t *testing.T) {
	sys, g := wellSystem(t, 50)
	probe := NewEnergy()

	for n := 1; n <= 3; n++ {
		psi := wellMode(t, g, n)
		got := probe.Sample(sys, psi, 0)
		want := modeEnergy(g, n)
		if math.Abs(got-want) > 1e-8 {
			t.Errorf("mode %d: got %g, expected %g", n, got, want)
		}
	}
}

func TestEnergyDrift(t *testing.T) {
	sys, g := wellSystem(t, 50)
	mode1 := wellMode(t, g, 1)
	mode2 := wellMode(t, g, 2)

	m := NewEnergyDrift(sys)

	m.Observe(mode1, 0)
	m.Observe(mode1, 1)
	if m.Value() != 0 {
		t.Errorf("drift of a repeated state: got %g, expected 0", m.Value())
	}

	m.Observe(mode2, 2)
	e1, e2 := modeEnergy(g, 1), modeEnergy(g, 2)
	want := (e2 - e1) / e1
	if math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("drift after mode change: got %g, expected %g", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}
