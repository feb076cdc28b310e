// Package metrics reduces the time series of an evolving case to scalar
// conservation and stability indicators.
package metrics

import "github.com/san-kum/sphpost/internal/storage"

// Sample is one row of a time series.
type Sample struct {
	T        float64
	Pressure float64
	Kinetic  float64
}

// Metric accumulates samples in time order.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Default returns a fresh set of the standard metrics.
func Default() []Metric {
	return []Metric{
		NewKineticPeak(),
		NewEnergyDrift(),
		NewPressureSpread(),
		NewFinite(),
	}
}

// Evaluate feeds every sample of ts to each metric and collects the values
// by name. Metrics are reset first.
func Evaluate(ts *storage.TimeSeries, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < ts.Len(); i++ {
		s := Sample{T: ts.Time[i], Pressure: ts.Pressure[i], Kinetic: ts.KineticEnergy[i]}
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
