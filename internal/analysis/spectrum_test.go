package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

func TestDominantFrequencyOnBin(t *testing.T) {
	const (
		n  = 64
		dt = 0.01
	)
	// Five full cycles over the window land exactly on bin 5.
	freq := 5.0 / (n * dt)

	series := make([]float64, n)
	for i := range series {
		series[i] = math.Cos(2 * math.Pi * freq * float64(i) * dt)
	}

	got, err := DominantFrequency(series, dt)
	if err != nil {
		t.Fatalf("DominantFrequency failed: %v", err)
	}
	if math.Abs(got-freq) > 1e-9 {
		t.Errorf("got %g, expected %g", got, freq)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	series := make([]float64, 32)
	for i := range series {
		series[i] = 7.5
	}

	spec, err := PowerSpectrum(series, 0.1)
	if err != nil {
		t.Fatalf("PowerSpectrum failed: %v", err)
	}
	for i, p := range spec.Power {
		if p > 1e-10 {
			t.Errorf("bin %d: power %g on a constant series", i, p)
		}
	}
}

func TestPowerSpectrumFrequencyAxis(t *testing.T) {
	series := make([]float64, 16)
	series[3] = 1

	spec, err := PowerSpectrum(series, 0.5)
	if err != nil {
		t.Fatalf("PowerSpectrum failed: %v", err)
	}

	if spec.Freqs[0] != 0 {
		t.Errorf("first bin at %g, expected 0", spec.Freqs[0])
	}
	nyquist := 0.5 / 0.5
	if math.Abs(spec.Freqs[len(spec.Freqs)-1]-nyquist) > 1e-12 {
		t.Errorf("last bin at %g, expected the Nyquist frequency %g", spec.Freqs[len(spec.Freqs)-1], nyquist)
	}
}

func TestPowerSpectrumRejectsBadInput(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1}, 0.1); !errors.Is(err, quantum.ErrInvalidConfig) {
		t.Errorf("single sample: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := PowerSpectrum([]float64{1, 2, 3}, 0); !errors.Is(err, quantum.ErrInvalidConfig) {
		t.Errorf("zero dt: expected ErrInvalidConfig, got %v", err)
	}
}
