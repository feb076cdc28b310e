package analysis

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewSamples is returned for series shorter than four samples.
var ErrTooFewSamples = errors.New("analysis: too few samples for a spectrum")

// Spectrum is a one-sided amplitude spectrum.
type Spectrum struct {
	Freq      []float64 // Hz
	Amplitude []float64
	Dt        float64 // mean sample spacing
}

// PowerSpectrum computes the amplitude spectrum of y sampled at times t. The
// series is treated as uniformly sampled at the mean spacing, and its mean is
// removed first.
func PowerSpectrum(t, y []float64) (*Spectrum, error) {
	n := len(y)
	if n < 4 || len(t) != n {
		return nil, ErrTooFewSamples
	}
	dt := (t[n-1] - t[0]) / float64(n-1)
	if dt <= 0 {
		return nil, errors.New("analysis: time must be increasing")
	}

	mean := stat.Mean(y, nil)
	centered := make([]float64, n)
	for i, v := range y {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, centered)

	s := &Spectrum{
		Freq:      make([]float64, len(coeff)),
		Amplitude: make([]float64, len(coeff)),
		Dt:        dt,
	}
	for i, c := range coeff {
		s.Freq[i] = fft.Freq(i) / dt
		s.Amplitude[i] = cmplx.Abs(c)
	}
	return s, nil
}

// Dominant returns the frequency and amplitude of the strongest component
// above zero frequency.
func (s *Spectrum) Dominant() (float64, float64) {
	best := 0
	for i := 1; i < len(s.Amplitude); i++ {
		if best == 0 || s.Amplitude[i] > s.Amplitude[best] {
			best = i
		}
	}
	if best == 0 {
		return 0, 0
	}
	return s.Freq[best], s.Amplitude[best]
}
