// Package particles holds the per-particle fields of one SPH snapshot and
// the quantities derived from them.
//
//   - [Fields]: raw named columns as read from the fluid group
//   - [Snapshot]: validated, derived, immutable view of one timestep
//   - [Predicate]: caller-supplied inclusion test over (x, y, z)
//
// # Derived fields
//
// The gradient fields are the volume-weighted fields divided by the particle
// volume, and the relative error is the ratio of the momentum-rate norm to the
// weighted pressure-gradient norm. Division by zero is not masked: NaN and Inf
// flow through to the statistics.
//
//	s, err := particles.New(fields, particles.DefaultRingThreshold)
//	quarter := s.SumMomentum(particles.Quarter)
package particles
