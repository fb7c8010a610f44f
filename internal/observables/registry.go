package observables

import (
	"fmt"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
)

// ByName builds the probe a config names. The reference state is used
// by overlap and ignored by the rest.
func ByName(name string, psi0 quantum.State) (sim.Probe, error) {
	switch name {
	case "norm":
		return NewNorm(), nil
	case "energy":
		return NewEnergy(), nil
	case "position_x":
		return NewPosition(0), nil
	case "position_y":
		return NewPosition(1), nil
	case "spread_x":
		return NewSpread(0), nil
	case "spread_y":
		return NewSpread(1), nil
	case "overlap":
		return NewOverlap(psi0), nil
	default:
		return nil, fmt.Errorf("unknown probe %q: %w", name, quantum.ErrInvalidConfig)
	}
}

// Names lists the probes ByName accepts.
func Names() []string {
	return []string{
		"norm",
		"energy",
		"position_x",
		"position_y",
		"spread_x",
		"spread_y",
		"overlap",
	}
}
