// Package analysis provides frequency analysis of time series.
//
//   - [PowerSpectrum]: one-sided amplitude spectrum of a uniformly sampled series
//   - [Spectrum.Dominant]: strongest non-constant component of a spectrum
//
// # Oscillation frequency
//
// The tracked-particle pressure of an oscillating bubble or droplet peaks at
// the oscillation frequency:
//
//	spec, err := analysis.PowerSpectrum(ts.Time, ts.Pressure)
//	f, amp := spec.Dominant()
package analysis
