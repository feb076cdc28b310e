package particles

import "math"

// Predicate decides whether a particle at (x, y, z) is included.
type Predicate func(x, y, z float64) bool

// All accepts every particle.
func All(x, y, z float64) bool { return true }

// Quarter accepts the x >= 0, y >= 0 quarter. Particles on either plane are included.
func Quarter(x, y, z float64) bool { return x >= 0 && y >= 0 }

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max [3]float64
}

// At returns the point at the given fraction of the box along each axis.
func (b Bounds) At(fx, fy, fz float64) [3]float64 {
	return [3]float64{
		b.Min[0] + fx*(b.Max[0]-b.Min[0]),
		b.Min[1] + fy*(b.Max[1]-b.Min[1]),
		b.Min[2] + fz*(b.Max[2]-b.Min[2]),
	}
}

// Bounds returns the bounding box of all particle positions.
func (s *Snapshot) Bounds() Bounds {
	b := Bounds{
		Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for i := 0; i < s.N; i++ {
		x, y, z := s.Pos.At(i)
		for k, v := range [3]float64{x, y, z} {
			b.Min[k] = math.Min(b.Min[k], v)
			b.Max[k] = math.Max(b.Max[k], v)
		}
	}
	return b
}

// Shell accepts particles whose distance to the vertical axis through center
// lies within width/2 of radius. zHalfWidth > 0 also bounds |z - center.z|,
// which turns the shell into a torus-like band.
func Shell(center [3]float64, radius, width, zHalfWidth float64) Predicate {
	lo, hi := radius-width/2, radius+width/2
	return func(x, y, z float64) bool {
		dx, dy := x-center[0], y-center[1]
		r := math.Sqrt(dx*dx + dy*dy)
		if r < lo || r > hi {
			return false
		}
		return zHalfWidth <= 0 || math.Abs(z-center[2]) <= zHalfWidth
	}
}

// Select returns the indices of the particles satisfying every predicate.
func (s *Snapshot) Select(preds ...Predicate) []int {
	idx := make([]int, 0)
	for i := 0; i < s.N; i++ {
		x, y, z := s.Pos.At(i)
		ok := true
		for _, p := range preds {
			if !p(x, y, z) {
				ok = false
				break
			}
		}
		if ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// SumMomentum sums the momentum-rate vectors over the selected particles.
func (s *Snapshot) SumMomentum(preds ...Predicate) [3]float64 {
	var sum [3]float64
	for _, i := range s.Select(preds...) {
		sum[0] += s.MV.X[i]
		sum[1] += s.MV.Y[i]
		sum[2] += s.MV.Z[i]
	}
	return sum
}
