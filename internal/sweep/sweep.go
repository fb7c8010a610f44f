// Package sweep pushes one numerical setting of a scenario across a
// range and records where the propagation breaks down. The bundled
// settings sit inside the stable region; sweeping dt or the expansion
// order past them shows the boundary empirically.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Sciguy324/QuantumSimulator/internal/observables"
	"github.com/Sciguy324/QuantumSimulator/internal/propagators"
	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
)

// Swept settings.
const (
	ParamDt    = "dt"
	ParamOrder = "order"
)

// DefaultTolerance is the norm-drift bound separating stable points
// from unstable ones.
const DefaultTolerance = 1e-3

// Sweep varies one numerical setting of a scenario across a range.
// Everything not swept keeps the scenario's bundled value.
type Sweep struct {
	Scenario  string
	Param     string // ParamDt or ParamOrder
	Min, Max  float64
	Points    int
	Steps     int     // steps per point; 0 keeps the scenario default
	Tolerance float64 // norm-drift bound; 0 means DefaultTolerance
}

// Point is the outcome at one parameter value. Drifts are the worst
// values seen over the run, not just the final ones.
type Point struct {
	Value       float64
	NormDrift   float64
	EnergyDrift float64
	Stable      bool
}

func (s Sweep) validate() error {
	if _, err := scenarios.Get(s.Scenario); err != nil {
		return err
	}
	switch s.Param {
	case ParamDt:
		if s.Min <= 0 {
			return fmt.Errorf("dt sweep must start above zero, got %g: %w", s.Min, quantum.ErrInvalidConfig)
		}
	case ParamOrder:
		if s.Min < 1 {
			return fmt.Errorf("order sweep must start at 1 or above, got %g: %w", s.Min, quantum.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown sweep parameter %q: %w", s.Param, quantum.ErrInvalidConfig)
	}
	if s.Max < s.Min {
		return fmt.Errorf("sweep range [%g, %g] is inverted: %w", s.Min, s.Max, quantum.ErrInvalidConfig)
	}
	if s.Points < 1 {
		return fmt.Errorf("sweep needs at least one point, got %d: %w", s.Points, quantum.ErrInvalidConfig)
	}
	if s.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d: %w", s.Steps, quantum.ErrInvalidConfig)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g: %w", s.Tolerance, quantum.ErrInvalidConfig)
	}
	return nil
}

func (s Sweep) values() []float64 {
	vals := make([]float64, s.Points)
	vals[0] = s.Min
	if s.Points > 1 {
		step := (s.Max - s.Min) / float64(s.Points-1)
		for i := 1; i < s.Points; i++ {
			vals[i] = s.Min + float64(i)*step
		}
	}
	return vals
}

// Run executes every point concurrently and returns them in parameter
// order. A run that blows up marks its point unstable; only setup
// problems and cancellation surface as errors.
func Run(ctx context.Context, sw Sweep) ([]Point, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}

	vals := sw.values()
	points := make([]Point, len(vals))
	errs := make([]error, len(vals))

	var wg sync.WaitGroup
	for i, v := range vals {
		wg.Add(1)
		go func(idx int, value float64) {
			defer wg.Done()
			points[idx], errs[idx] = runPoint(ctx, sw, value)
		}(i, v)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.Param, vals[i], err)
		}
	}
	return points, nil
}

func runPoint(ctx context.Context, sw Sweep, value float64) (Point, error) {
	pt := Point{Value: value}

	scen, err := scenarios.Get(sw.Scenario)
	if err != nil {
		return pt, err
	}
	d := scen.Defaults
	switch sw.Param {
	case ParamDt:
		d.Dt = value
	case ParamOrder:
		d.Order = int(math.Round(value))
	}
	if sw.Steps > 0 {
		d.Steps = sw.Steps
	}

	sys, psi0, err := scen.Build()
	if err != nil {
		return pt, err
	}
	prop, err := propagators.New(d.Propagator, d.Order)
	if err != nil {
		return pt, err
	}
	boundary, err := quantum.BoundaryByName(d.Boundary)
	if err != nil {
		return pt, err
	}

	normDrift := observables.NewNormDrift(sys.Grid())
	energyDrift := observables.NewEnergyDrift(sys)

	s := sim.New(sys, prop, boundary)
	s.AddMetric(normDrift)
	s.AddMetric(energyDrift)

	// Drift is only measurable with renormalization off.
	cfg := sim.Config{
		Dt:            d.Dt,
		Steps:         d.Steps,
		SampleEvery:   d.Steps,
		ValidateEvery: 1,
	}
	_, err = s.Run(ctx, psi0, cfg)

	pt.NormDrift = normDrift.Value()
	pt.EnergyDrift = energyDrift.Value()
	if err != nil {
		var stepErr *quantum.StepError
		if !errors.As(err, &stepErr) {
			return pt, err
		}
		// The blow-up is the data point, not a failure of the sweep.
		return pt, nil
	}

	tolerance := sw.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	pt.Stable = pt.NormDrift <= tolerance
	return pt, nil
}
