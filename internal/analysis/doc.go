// Package analysis provides spectral and eigenstructure tools for
// finished runs.
//
//   - [PowerSpectrum]: one-sided spectrum of a sampled observable
//   - [DominantFrequency]: strongest oscillation in a series
//   - [Eigenstates]: lowest eigenpairs of a one-dimensional Hamiltonian
//   - [Decompose]: eigenbasis decomposition of a state
//
// # Beat Frequencies
//
// A superposition of two eigenstates makes every position observable
// oscillate at the energy gap:
//
//	freq, _ := analysis.DominantFrequency(series, dt)
//	gap := 2 * math.Pi * freq // hbar = 1
package analysis
