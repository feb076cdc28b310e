package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PressureSpread is the standard deviation of the tracked pressure.
type PressureSpread struct {
	values []float64
}

func NewPressureSpread() *PressureSpread { return &PressureSpread{} }

func (p *PressureSpread) Name() string { return "pressure_std" }

func (p *PressureSpread) Observe(s Sample) {
	p.values = append(p.values, s.Pressure)
}

func (p *PressureSpread) Value() float64 {
	if len(p.values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(p.values, nil)
}

func (p *PressureSpread) Reset() {
	p.values = p.values[:0]
}

// Finite is the fraction of samples whose values are all finite. A run that
// blew up scores below 1.
type Finite struct {
	violations int
	samples    int
}

func NewFinite() *Finite { return &Finite{} }

func (f *Finite) Name() string { return "finite_ratio" }

func (f *Finite) Observe(s Sample) {
	f.samples++
	for _, v := range []float64{s.T, s.Pressure, s.Kinetic} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			f.violations++
			return
		}
	}
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.violations)/float64(f.samples)
}

func (f *Finite) Reset() {
	f.violations = 0
	f.samples = 0
}
