package metrics

import "math"

// KineticPeak is the largest kinetic energy seen. For a case at rest it
// measures the spurious currents.
type KineticPeak struct {
	peak    float64
	samples int
}

func NewKineticPeak() *KineticPeak { return &KineticPeak{} }

func (k *KineticPeak) Name() string { return "kinetic_peak" }

func (k *KineticPeak) Observe(s Sample) {
	if k.samples == 0 || s.Kinetic > k.peak {
		k.peak = s.Kinetic
	}
	k.samples++
}

func (k *KineticPeak) Value() float64 {
	if k.samples == 0 {
		return math.NaN()
	}
	return k.peak
}

func (k *KineticPeak) Reset() {
	k.peak = 0
	k.samples = 0
}

// EnergyDrift is the largest relative deviation of the kinetic energy from
// its first sample. It is NaN when the first sample is zero.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s Sample) {
	if e.samples == 0 {
		e.initial = s.Kinetic
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(s.Kinetic-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	if e.samples == 0 || e.initial == 0 {
		return math.NaN()
	}
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
