package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

// Spectrum is the one-sided magnitude spectrum of a sampled series.
type Spectrum struct {
	Freqs []float64 // cycles per unit time
	Power []float64
}

// PowerSpectrum transforms a uniformly sampled series with spacing dt.
// The mean is removed first so the zero bin does not swamp the
// physical peaks.
func PowerSpectrum(series []float64, dt float64) (*Spectrum, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("spectrum needs at least 2 samples, got %d: %w", len(series), quantum.ErrInvalidConfig)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("sample spacing must be positive, got %g: %w", dt, quantum.ErrInvalidConfig)
	}

	mean := stat.Mean(series, nil)
	detrended := make([]float64, len(series))
	for i, v := range series {
		detrended[i] = v - mean
	}

	fft := fourier.NewFFT(len(detrended))
	coeffs := fft.Coefficients(nil, detrended)

	spec := &Spectrum{
		Freqs: make([]float64, len(coeffs)),
		Power: make([]float64, len(coeffs)),
	}
	for i, c := range coeffs {
		spec.Freqs[i] = fft.Freq(i) / dt
		spec.Power[i] = cmplx.Abs(c)
	}
	return spec, nil
}

// DominantFrequency returns the frequency of the strongest bin above
// DC.
func DominantFrequency(series []float64, dt float64) (float64, error) {
	spec, err := PowerSpectrum(series, dt)
	if err != nil {
		return 0, err
	}
	if len(spec.Power) < 2 {
		return 0, nil
	}
	best := 1
	for i := 2; i < len(spec.Power); i++ {
		if spec.Power[i] > spec.Power[best] {
			best = i
		}
	}
	return spec.Freqs[best], nil
}
