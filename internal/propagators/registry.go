package propagators

import (
	"fmt"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// New builds a propagator by name. The order argument only matters
// for the Taylor scheme; the others ignore it.
func New(name string, order int) (quantum.Propagator, error) {
	switch name {
	case "", "taylor":
		return NewTaylor(order), nil
	case "euler":
		return NewEuler(), nil
	case "visscher":
		return NewVisscher(), nil
	case "crank-nicolson", "cn":
		return NewCrankNicolson(), nil
	default:
		return nil, fmt.Errorf("unknown propagator %q: %w", name, quantum.ErrInvalidConfig)
	}
}

// Names lists the selectable propagators.
func Names() []string {
	return []string{"taylor", "euler", "visscher", "crank-nicolson"}
}
