package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state containing NaN or Inf amplitudes.
	ErrInvalidState = errors.New("quantum: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the evolution diverged.
	ErrUnstable = errors.New("quantum: evolution unstable (state diverged)")

	// ErrDimension indicates an operation applied to an unsupported grid dimension.
	ErrDimension = errors.New("quantum: unsupported grid dimension")

	// ErrGridMismatch indicates a state whose length does not match its grid.
	ErrGridMismatch = errors.New("quantum: state length does not match grid")

	// ErrNotNormalizable indicates a state with zero or undefined norm.
	ErrNotNormalizable = errors.New("quantum: state is not normalizable")

	// ErrInvalidConfig indicates configuration values outside valid ranges.
	ErrInvalidConfig = errors.New("quantum: invalid configuration")

	// ErrUnsupported indicates a propagator or analysis that cannot serve the given system.
	ErrUnsupported = errors.New("quantum: operation not supported for this system")
)

// StepError wraps an error with the step and simulation time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
