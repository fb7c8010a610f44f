package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Simulator drives one system through time: propagate, apply the
// boundary, renormalize, and feed probes, metrics, and observers.
type Simulator struct {
	sys       quantum.System
	prop      quantum.Propagator
	boundary  quantum.Boundary
	probes    []Probe
	metrics   []quantum.Metric
	observers []quantum.Observer
}

func New(sys quantum.System, prop quantum.Propagator, boundary quantum.Boundary) *Simulator {
	if boundary == nil {
		boundary = quantum.NoBoundary()
	}
	return &Simulator{
		sys:      sys,
		prop:     prop,
		boundary: boundary,
	}
}

func (s *Simulator) AddProbe(p Probe)               { s.probes = append(s.probes, p) }
func (s *Simulator) AddMetric(m quantum.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o quantum.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) System() quantum.System { return s.sys }

// Prepare gives the propagator a chance to reject the system before
// any stepping happens.
func (s *Simulator) Prepare() error {
	if p, ok := s.prop.(quantum.Preparer); ok {
		return p.Prepare(s.sys)
	}
	return nil
}

// Step advances one frame the way the viewers do: propagate, apply
// the boundary, renormalize, and validate.
func (s *Simulator) Step(psi quantum.State, dt float64) (quantum.State, error) {
	return s.step(psi, dt, true, true)
}

func (s *Simulator) step(psi quantum.State, dt float64, renormalize, validate bool) (quantum.State, error) {
	next := s.prop.Step(s.sys, psi, dt)
	s.boundary.Apply(next, s.sys.Grid())
	if renormalize {
		if err := s.sys.Grid().Normalize(next); err != nil {
			return next, err
		}
	}
	if validate && !next.IsValid() {
		return next, quantum.ErrInvalidState
	}
	return next, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g: %w", cfg.Dt, quantum.ErrInvalidConfig)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", cfg.Steps, quantum.ErrInvalidConfig)
	}
	return nil
}

// Run advances the state cfg.Steps times and records the probe series.
// On cancellation or a failed step it returns the partial result
// together with the error.
func (s *Simulator) Run(ctx context.Context, psi0 quantum.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	g := s.sys.Grid()
	if len(psi0) != g.Size() {
		return nil, fmt.Errorf("state has %d points, grid has %d: %w", len(psi0), g.Size(), quantum.ErrGridMismatch)
	}
	if !psi0.IsValid() {
		return nil, quantum.ErrInvalidState
	}
	if err := s.Prepare(); err != nil {
		return nil, err
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	samples := cfg.Steps/sampleEvery + 1

	result := &Result{
		Times:   make([]float64, 0, samples),
		Series:  make(map[string][]float64, len(s.probes)),
		Metrics: make(map[string]float64, len(s.metrics)),
	}
	for _, p := range s.probes {
		result.Series[p.Name()] = make([]float64, 0, samples)
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	psi := psi0.Clone()
	t := 0.0
	initialEnergy := quantum.Energy(s.sys, psi)

	record := func() {
		result.Times = append(result.Times, t)
		for _, p := range s.probes {
			result.Series[p.Name()] = append(result.Series[p.Name()], p.Sample(s.sys, psi, t))
		}
		if cfg.KeepStates {
			result.States = append(result.States, psi.Clone())
		}
	}
	observe := func() {
		for _, m := range s.metrics {
			m.Observe(psi, t)
		}
		for _, o := range s.observers {
			o.OnStep(psi, t)
		}
	}

	record()
	observe()

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, psi, initialEnergy)
			return result, ctx.Err()
		default:
		}

		validate := cfg.ValidateEvery > 0 && (i+1)%cfg.ValidateEvery == 0
		next, err := s.step(psi, cfg.Dt, cfg.Renormalize, validate)
		if err != nil {
			s.finish(result, psi, initialEnergy)
			return result, &quantum.StepError{Step: i, Time: t, Wrapped: err}
		}

		psi = next
		t += cfg.Dt
		result.StepsTaken++

		observe()
		if (i+1)%sampleEvery == 0 {
			record()
		}
	}

	s.finish(result, psi, initialEnergy)
	return result, nil
}

func (s *Simulator) finish(result *Result, psi quantum.State, initialEnergy float64) {
	result.Final = psi.Clone()
	result.NormDrift = math.Abs(s.sys.Grid().Norm(psi) - 1)
	finalEnergy := quantum.Energy(s.sys, psi)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback steps until the callback returns false or the
// context is cancelled. The callback sees every state including the
// initial one.
func (s *Simulator) RunWithCallback(ctx context.Context, psi0 quantum.State, cfg Config, callback func(psi quantum.State, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	if err := s.Prepare(); err != nil {
		return err
	}

	psi := psi0.Clone()
	t := 0.0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(psi, t) {
			return nil
		}

		next, err := s.step(psi, cfg.Dt, cfg.Renormalize, true)
		if err != nil {
			return &quantum.StepError{Step: i, Time: t, Wrapped: err}
		}
		psi = next
		t += cfg.Dt
	}
	callback(psi, t)
	return nil
}
