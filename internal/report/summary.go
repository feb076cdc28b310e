// Package report computes the summary statistics of a snapshot and prints
// them in the fixed layout used for visual inspection of runs.
package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sphpost/internal/log"
	"github.com/san-kum/sphpost/internal/particles"
)

// Stats is a min/mean/max triple. All three are NaN for an empty sample or
// when the sample contains a NaN.
type Stats struct {
	Min, Mean, Max float64
}

// NewStats reduces values. Infinities are kept as they are.
func NewStats(values []float64) Stats {
	if len(values) == 0 || floats.HasNaN(values) {
		nan := math.NaN()
		return Stats{nan, nan, nan}
	}
	return Stats{
		Min:  floats.Min(values),
		Mean: stat.Mean(values, nil),
		Max:  floats.Max(values),
	}
}

// Scale multiplies the three values by f.
func (s Stats) Scale(f float64) Stats {
	return Stats{s.Min * f, s.Mean * f, s.Max * f}
}

// Summary is everything printed by Write.
type Summary struct {
	Particles         int
	RingSize          int
	QuarterSum        [3]float64
	Pressure          Stats
	ExpectedCurvature float64
	Kappa             Stats
	Epsilon           Stats // relative error, percent
}

// Summarize computes the summary restricted to the ring particles.
func Summarize(s *particles.Snapshot) *Summary {
	if len(s.Ring) == 0 {
		log.Warnw("no particle above the ring threshold, ring statistics are NaN",
			"particles", s.N, "threshold", s.RingThreshold)
	}
	return &Summary{
		Particles:         s.N,
		RingSize:          len(s.Ring),
		QuarterSum:        s.SumMomentum(particles.Quarter),
		Pressure:          NewStats(particles.Gather(s.P, s.Ring)),
		ExpectedCurvature: particles.ExpectedCurvature(s.TotalVolume()),
		Kappa:             NewStats(particles.Gather(s.Kappa, s.Ring)),
		Epsilon:           NewStats(particles.Gather(s.Rel, s.Ring)).Scale(100),
	}
}

// Metrics flattens the summary into named values.
func (s *Summary) Metrics() map[string]float64 {
	return map[string]float64{
		"particles":          float64(s.Particles),
		"ring_size":          float64(s.RingSize),
		"quarter_sum_x":      s.QuarterSum[0],
		"quarter_sum_y":      s.QuarterSum[1],
		"quarter_sum_z":      s.QuarterSum[2],
		"pressure_min":       s.Pressure.Min,
		"pressure_max":       s.Pressure.Max,
		"expected_curvature": s.ExpectedCurvature,
		"kappa_min":          s.Kappa.Min,
		"kappa_mean":         s.Kappa.Mean,
		"kappa_max":          s.Kappa.Max,
		"epsilon_min":        s.Epsilon.Min,
		"epsilon_mean":       s.Epsilon.Mean,
		"epsilon_max":        s.Epsilon.Max,
	}
}
