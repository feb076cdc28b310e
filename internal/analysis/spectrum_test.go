package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrum_Sine(t *testing.T) {
	const (
		n    = 256
		dt   = 0.01
		freq = 12.5 // Hz, exactly on bin 32
	)
	ts := make([]float64, n)
	ys := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) * dt
		ys[i] = 3 + math.Sin(2*math.Pi*freq*ts[i])
	}

	spec, err := PowerSpectrum(ts, ys)
	if err != nil {
		t.Fatalf("spectrum failed: %v", err)
	}
	if len(spec.Freq) != n/2+1 {
		t.Errorf("expected %d bins, got %d", n/2+1, len(spec.Freq))
	}

	f, amp := spec.Dominant()
	if math.Abs(f-freq) > 1e-9 {
		t.Errorf("expected dominant frequency %v, got %v", freq, f)
	}
	if amp <= 0 {
		t.Errorf("expected positive amplitude, got %v", amp)
	}
	if spec.Amplitude[0] > 1e-9 {
		t.Errorf("mean should be removed, DC amplitude %v", spec.Amplitude[0])
	}
}

func TestPowerSpectrum_Errors(t *testing.T) {
	if _, err := PowerSpectrum([]float64{0, 1, 2}, []float64{1, 2, 3}); err != ErrTooFewSamples {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
	if _, err := PowerSpectrum([]float64{0, 1, 2, 3}, []float64{1, 2}); err != ErrTooFewSamples {
		t.Errorf("expected ErrTooFewSamples for length mismatch, got %v", err)
	}
	if _, err := PowerSpectrum([]float64{1, 1, 1, 1}, []float64{1, 2, 3, 4}); err == nil {
		t.Error("expected error for constant time")
	}
}

func TestDominant_Flat(t *testing.T) {
	s := &Spectrum{Freq: []float64{0}, Amplitude: []float64{1}}
	if f, a := s.Dominant(); f != 0 || a != 0 {
		t.Errorf("expected zero, got %v %v", f, a)
	}
}

func TestPowerSpectrum_NoPadding(t *testing.T) {
	const (
		n    = 100
		dt   = 0.01
		freq = 10.0 // bin 10
	)
	ts := make([]float64, n)
	ys := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) * dt
		ys[i] = math.Cos(2 * math.Pi * freq * ts[i])
	}

	spec, err := PowerSpectrum(ts, ys)
	if err != nil {
		t.Fatalf("spectrum failed: %v", err)
	}
	if len(spec.Freq) != n/2+1 {
		t.Errorf("expected %d bins for %d samples, got %d", n/2+1, n, len(spec.Freq))
	}
	if f, _ := spec.Dominant(); math.Abs(f-freq) > 1e-9 {
		t.Errorf("expected dominant frequency %v, got %v", freq, f)
	}
}
