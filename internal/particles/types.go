package particles

import (
	"fmt"
	"math"
)

// DefaultRingThreshold is the curvature above which a particle belongs to the
// interface. Bulk particles sit close to zero.
const DefaultRingThreshold = 1.0

// Dataset names inside the fluid group.
const (
	FieldX         = "X"
	FieldY         = "Y"
	FieldZ         = "Z"
	FieldVolume    = "Volume"
	FieldVX        = "VX"
	FieldVY        = "VY"
	FieldVZ        = "VZ"
	FieldPressure  = "P"
	FieldCurvature = "Curvature"
	FieldMVX       = "mvx"
	FieldMVY       = "mvy"
	FieldMVZ       = "mvz"
	FieldFTSX      = "FTSx"
	FieldFTSY      = "FTSy"
	FieldFTSZ      = "FTSz"
	FieldWGRPX     = "wGRPx"
	FieldWGRPY     = "wGRPy"
	FieldWGRPZ     = "wGRPz"
)

// RequiredFields lists every dataset a snapshot needs, in display order.
var RequiredFields = []string{
	FieldX, FieldY, FieldZ,
	FieldVX, FieldVY, FieldVZ,
	FieldPressure, FieldCurvature,
	FieldMVX, FieldMVY, FieldMVZ,
	FieldFTSX, FieldFTSY, FieldFTSZ,
	FieldWGRPX, FieldWGRPY, FieldWGRPZ,
	FieldVolume,
}

// Fields maps dataset names to their values.
type Fields map[string][]float64

// Vec3Field stores one vector quantity as three component columns.
type Vec3Field struct {
	X, Y, Z []float64
}

// Len returns the number of particles.
func (v Vec3Field) Len() int { return len(v.X) }

// At returns the components of particle i.
func (v Vec3Field) At(i int) (float64, float64, float64) {
	return v.X[i], v.Y[i], v.Z[i]
}

// Norm returns the Euclidean norm of particle i.
func (v Vec3Field) Norm(i int) float64 {
	x, y, z := v.At(i)
	return math.Sqrt(x*x + y*y + z*z)
}

// Snapshot is the state of the particle cloud at one timestep.
// It is read-only once built by New.
type Snapshot struct {
	N int

	Pos    Vec3Field
	Vel    Vec3Field
	Volume []float64
	P      []float64
	Kappa  []float64

	MV   Vec3Field // momentum rate
	FTS  Vec3Field // surface-tension force
	WFTS Vec3Field // Volume * FTS
	WGRP Vec3Field // volume-weighted pressure gradient
	GRP  Vec3Field // WGRP / Volume
	Rel  []float64 // |MV| / |WGRP|

	RingThreshold float64
	Ring          []int
}

// New validates the raw fields and builds the derived snapshot.
func New(f Fields, ringThreshold float64) (*Snapshot, error) {
	n := -1
	for _, name := range RequiredFields {
		col, ok := f[name]
		if !ok {
			return nil, fmt.Errorf("%w: field %q not found", ErrMalformedData, name)
		}
		if n < 0 {
			n = len(col)
		} else if len(col) != n {
			return nil, fmt.Errorf("%w: field %q has %d values, expected %d", ErrMalformedData, name, len(col), n)
		}
	}

	s := &Snapshot{
		N:      n,
		Pos:    Vec3Field{f[FieldX], f[FieldY], f[FieldZ]},
		Vel:    Vec3Field{f[FieldVX], f[FieldVY], f[FieldVZ]},
		Volume: f[FieldVolume],
		P:      f[FieldPressure],
		Kappa:  f[FieldCurvature],
		MV:     Vec3Field{f[FieldMVX], f[FieldMVY], f[FieldMVZ]},
		FTS:    Vec3Field{f[FieldFTSX], f[FieldFTSY], f[FieldFTSZ]},
		WGRP:   Vec3Field{f[FieldWGRPX], f[FieldWGRPY], f[FieldWGRPZ]},

		RingThreshold: ringThreshold,
	}

	s.WFTS = Scale(s.FTS, s.Volume)
	s.GRP = Divide(s.WGRP, s.Volume)
	s.Rel = RelativeError(s.MV, s.WGRP)
	s.Ring = RingIndices(s.Kappa, ringThreshold)

	return s, nil
}

// Field returns a named column, including the derived ones.
func (s *Snapshot) Field(name string) ([]float64, bool) {
	switch name {
	case FieldX:
		return s.Pos.X, true
	case FieldY:
		return s.Pos.Y, true
	case FieldZ:
		return s.Pos.Z, true
	case FieldVX:
		return s.Vel.X, true
	case FieldVY:
		return s.Vel.Y, true
	case FieldVZ:
		return s.Vel.Z, true
	case FieldVolume:
		return s.Volume, true
	case FieldPressure:
		return s.P, true
	case FieldCurvature:
		return s.Kappa, true
	case FieldMVX:
		return s.MV.X, true
	case FieldMVY:
		return s.MV.Y, true
	case FieldMVZ:
		return s.MV.Z, true
	case FieldFTSX:
		return s.FTS.X, true
	case FieldFTSY:
		return s.FTS.Y, true
	case FieldFTSZ:
		return s.FTS.Z, true
	case FieldWGRPX:
		return s.WGRP.X, true
	case FieldWGRPY:
		return s.WGRP.Y, true
	case FieldWGRPZ:
		return s.WGRP.Z, true
	case "GRPx":
		return s.GRP.X, true
	case "GRPy":
		return s.GRP.Y, true
	case "GRPz":
		return s.GRP.Z, true
	case "wFTSx":
		return s.WFTS.X, true
	case "wFTSy":
		return s.WFTS.Y, true
	case "wFTSz":
		return s.WFTS.Z, true
	case "rel":
		return s.Rel, true
	}
	return nil, false
}
