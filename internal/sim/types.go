package sim

import "github.com/Sciguy324/QuantumSimulator/internal/quantum"

// Probe samples a scalar from the state, recorded as a time series
// over a run.
type Probe interface {
	Name() string
	Sample(sys quantum.System, psi quantum.State, t float64) float64
}

// Config controls a batch run.
type Config struct {
	Dt            float64
	Steps         int
	SampleEvery   int
	Renormalize   bool
	ValidateEvery int
	KeepStates    bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            5e-3,
		Steps:         1000,
		SampleEvery:   1,
		Renormalize:   true,
		ValidateEvery: 10,
	}
}

// Result collects everything a run produced: sampled series keyed by
// probe name, the final state, and end-of-run metric values.
type Result struct {
	Times       []float64
	Series      map[string][]float64
	States      []quantum.State
	Final       quantum.State
	StepsTaken  int
	NormDrift   float64
	EnergyDrift float64
	Metrics     map[string]float64
}
