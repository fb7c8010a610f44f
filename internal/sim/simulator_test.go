package sim

import (
	"context"
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/propagators"
	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

func testSystem(t testing.TB, points int) (*quantum.Schrodinger, quantum.State) {
	t.Helper()
	g, err := quantum.NewGrid(quantum.Span{Min: 0, Max: 1, Points: points})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	sys, err := quantum.NewSchrodinger(g, nil)
	if err != nil {
		t.Fatalf("NewSchrodinger failed: %v", err)
	}
	psi := g.Sample(func(x []float64) complex128 {
		return complex(math.Sin(math.Pi*x[0]), 0)
	})
	if err := g.Normalize(psi); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return sys, psi
}

// phaseProp multiplies the state by a fixed unitary phase.
type phaseProp struct {
	factor complex128
}

func (p *phaseProp) Name() string { return "phase" }
func (p *phaseProp) Step(sys quantum.System, psi quantum.State, dt float64) quantum.State {
	next := psi.Clone()
	next.Scale(p.factor)
	return next
}

// explodingProp corrupts the state once it has been called enough times.
type explodingProp struct {
	after int
	calls int
}

func (p *explodingProp) Name() string { return "exploding" }
func (p *explodingProp) Step(sys quantum.System, psi quantum.State, dt float64) quantum.State {
	p.calls++
	next := psi.Clone()
	if p.calls >= p.after {
		next[0] = complex(math.NaN(), 0)
	}
	return next
}

type normProbe struct{}

func (normProbe) Name() string { return "norm" }
func (normProbe) Sample(sys quantum.System, psi quantum.State, t float64) float64 {
	return sys.Grid().Norm(psi)
}

func TestSimulatorRun(t *testing.T) {
	sys, psi0 := testSystem(t, 20)
	s := New(sys, &phaseProp{factor: cmplx.Exp(complex(0, -0.1))}, nil)
	s.AddProbe(normProbe{})

	cfg := DefaultConfig()
	cfg.Steps = 10

	result, err := s.Run(context.Background(), psi0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Times))
	}
	series, ok := result.Series["norm"]
	if !ok {
		t.Fatal("norm series missing from result")
	}
	if len(series) != 11 {
		t.Fatalf("expected 11 norm samples, got %d", len(series))
	}
	for i, v := range series {
		if math.Abs(v-1) > 1e-9 {
			t.Errorf("sample %d: norm %g, expected 1", i, v)
		}
	}
	if len(result.Final) != len(psi0) {
		t.Errorf("final state has %d points, expected %d", len(result.Final), len(psi0))
	}
	if result.NormDrift > 1e-9 {
		t.Errorf("norm drift %g with renormalization on", result.NormDrift)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Steps: 10}},
		{"negative dt", Config{Dt: -0.1, Steps: 10}},
		{"zero steps", Config{Dt: 0.1, Steps: 0}},
		{"negative steps", Config{Dt: 0.1, Steps: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), psi0, tt.cfg)
			if !errors.Is(err, quantum.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorGridMismatch(t *testing.T) {
	sys, _ := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)

	_, err := s.Run(context.Background(), make(quantum.State, 7), DefaultConfig())
	if !errors.Is(err, quantum.ErrGridMismatch) {
		t.Errorf("expected ErrGridMismatch, got %v", err)
	}
}

func TestSimulatorInvalidInitialState(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	psi0[3] = complex(math.Inf(1), 0)
	s := New(sys, &phaseProp{factor: 1}, nil)

	_, err := s.Run(context.Background(), psi0, DefaultConfig())
	if !errors.Is(err, quantum.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestSimulatorStepErrorCarriesStep(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &explodingProp{after: 3}, nil)

	cfg := Config{Dt: 0.01, Steps: 10, ValidateEvery: 1}
	result, err := s.Run(context.Background(), psi0, cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, quantum.ErrInvalidState) {
		t.Errorf("expected wrapped ErrInvalidState, got %v", err)
	}
	var stepErr *quantum.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if stepErr.Step != 2 {
		t.Errorf("failing step: got %d, expected 2", stepErr.Step)
	}
	if result == nil {
		t.Fatal("expected partial result alongside the error")
	}
	if result.StepsTaken != 2 {
		t.Errorf("partial result has %d steps, expected 2", result.StepsTaken)
	}
}

type countingMetric struct {
	count int
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(psi quantum.State, t float64) {
	m.count++
}
func (m *countingMetric) Value() float64 { return float64(m.count) }
func (m *countingMetric) Reset()         { m.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)

	metric := &countingMetric{}
	s.AddMetric(metric)

	cfg := DefaultConfig()
	cfg.Steps = 10

	result, err := s.Run(context.Background(), psi0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["count"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 11 {
		t.Errorf("expected 11 observations, got %d", metric.count)
	}
}

func TestSimulatorCancel(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, psi0, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || len(result.Times) != 1 {
		t.Error("partial result should carry the initial sample")
	}
}

func TestSimulatorSampleEvery(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)
	s.AddProbe(normProbe{})

	cfg := DefaultConfig()
	cfg.Steps = 10
	cfg.SampleEvery = 5

	result, err := s.Run(context.Background(), psi0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(result.Times))
	}
	if math.Abs(result.Times[1]-5*cfg.Dt) > 1e-12 {
		t.Errorf("second sample at t=%g, expected %g", result.Times[1], 5*cfg.Dt)
	}
}

func TestSimulatorKeepStates(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)

	cfg := DefaultConfig()
	cfg.Steps = 4
	cfg.KeepStates = true

	result, err := s.Run(context.Background(), psi0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.States) != len(result.Times) {
		t.Fatalf("snapshot count %d does not match sample count %d", len(result.States), len(result.Times))
	}
	for i := range psi0 {
		if result.States[0][i] != psi0[i] {
			t.Fatal("first snapshot should equal the initial state")
		}
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	sys, psi0 := testSystem(t, 10)
	s := New(sys, &phaseProp{factor: 1}, nil)

	calls := 0
	err := s.RunWithCallback(context.Background(), psi0, DefaultConfig(), func(psi quantum.State, t float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callback invocations, got %d", calls)
	}
}

func TestEigenstateDensityIsStationary(t *testing.T) {
	sys, psi0 := testSystem(t, 50)
	s := New(sys, propagators.NewTaylor(70), quantum.Dirichlet())

	before := psi0.SquareModulus(nil)

	cfg := DefaultConfig()
	cfg.Steps = 20

	result, err := s.Run(context.Background(), psi0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	after := result.Final.SquareModulus(nil)
	for i := range before {
		if math.Abs(after[i]-before[i]) > 1e-9 {
			t.Fatalf("density moved at point %d: %g changed to %g", i, before[i], after[i])
		}
	}
	if result.EnergyDrift > 1e-9 {
		t.Errorf("energy drift %g, expected ~0 for an eigenstate", result.EnergyDrift)
	}
}
