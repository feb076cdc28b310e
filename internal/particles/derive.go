package particles

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scale multiplies every component of v by w elementwise.
func Scale(v Vec3Field, w []float64) Vec3Field {
	out := Vec3Field{
		X: make([]float64, len(w)),
		Y: make([]float64, len(w)),
		Z: make([]float64, len(w)),
	}
	floats.MulTo(out.X, v.X, w)
	floats.MulTo(out.Y, v.Y, w)
	floats.MulTo(out.Z, v.Z, w)
	return out
}

// Divide divides every component of v by w elementwise. A zero in w gives
// Inf or NaN in the result.
func Divide(v Vec3Field, w []float64) Vec3Field {
	out := Vec3Field{
		X: make([]float64, len(w)),
		Y: make([]float64, len(w)),
		Z: make([]float64, len(w)),
	}
	floats.DivTo(out.X, v.X, w)
	floats.DivTo(out.Y, v.Y, w)
	floats.DivTo(out.Z, v.Z, w)
	return out
}

// RelativeError returns |num| / |den| per particle.
func RelativeError(num, den Vec3Field) []float64 {
	out := make([]float64, num.Len())
	for i := range out {
		out[i] = num.Norm(i) / den.Norm(i)
	}
	return out
}

// RingIndices returns the indices whose curvature is strictly above threshold.
func RingIndices(kappa []float64, threshold float64) []int {
	ring := make([]int, 0)
	for i, k := range kappa {
		if k > threshold {
			ring = append(ring, i)
		}
	}
	return ring
}

// ExpectedCurvature is the curvature of a sphere holding the given total
// volume: 2 / R with R = (3V / 4pi)^(1/3).
func ExpectedCurvature(totalVolume float64) float64 {
	return 2 / math.Cbrt(3*totalVolume/(4*math.Pi))
}

// TotalVolume sums the particle volumes.
func (s *Snapshot) TotalVolume() float64 {
	return floats.Sum(s.Volume)
}

// Gather returns values[i] for every i in idx.
func Gather(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for j, i := range idx {
		out[j] = values[i]
	}
	return out
}
