package particles_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sphpost/internal/particles"
)

// uniformFields builds n particles with every field set to v.
func uniformFields(n int, v float64) particles.Fields {
	f := particles.Fields{}
	for _, name := range particles.RequiredFields {
		col := make([]float64, n)
		for i := range col {
			col[i] = v
		}
		f[name] = col
	}
	return f
}

var _ = Describe("Snapshot", func() {
	Describe("New", func() {
		It("keeps every array at length n", func() {
			s, err := particles.New(uniformFields(4, 2), particles.DefaultRingThreshold)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.N).To(Equal(4))
			for _, name := range append(particles.RequiredFields, "GRPx", "wFTSz", "rel") {
				col, ok := s.Field(name)
				Expect(ok).To(BeTrue(), name)
				Expect(col).To(HaveLen(4), name)
			}
		})

		It("rejects a missing field", func() {
			f := uniformFields(3, 1)
			delete(f, particles.FieldCurvature)
			_, err := particles.New(f, particles.DefaultRingThreshold)
			Expect(errors.Is(err, particles.ErrMalformedData)).To(BeTrue())
		})

		It("rejects a length mismatch", func() {
			f := uniformFields(3, 1)
			f[particles.FieldVY] = []float64{1, 2}
			_, err := particles.New(f, particles.DefaultRingThreshold)
			Expect(errors.Is(err, particles.ErrMalformedData)).To(BeTrue())
		})
	})

	Describe("derived fields", func() {
		var s *particles.Snapshot

		BeforeEach(func() {
			f := uniformFields(3, 0)
			f[particles.FieldVolume] = []float64{2, 4, 0.5}
			f[particles.FieldWGRPX] = []float64{2, 8, 1}
			f[particles.FieldWGRPY] = []float64{4, 0, 0}
			f[particles.FieldWGRPZ] = []float64{0, 0, 0}
			f[particles.FieldMVX] = []float64{0, 3, 1}
			f[particles.FieldMVY] = []float64{0, 4, 0}
			f[particles.FieldFTSX] = []float64{1, 1, 1}
			var err error
			s, err = particles.New(f, particles.DefaultRingThreshold)
			Expect(err).NotTo(HaveOccurred())
		})

		It("divides the weighted gradient by the volume", func() {
			for i := 0; i < s.N; i++ {
				Expect(s.GRP.X[i]).To(Equal(s.WGRP.X[i] / s.Volume[i]))
				Expect(s.GRP.Y[i]).To(Equal(s.WGRP.Y[i] / s.Volume[i]))
			}
			Expect(s.GRP.X).To(Equal([]float64{1, 2, 2}))
		})

		It("weights the surface tension by the volume", func() {
			Expect(s.WFTS.X).To(Equal([]float64{2, 4, 0.5}))
		})

		It("computes the norm ratio", func() {
			Expect(s.Rel[0]).To(Equal(0.0))
			Expect(s.Rel[1]).To(BeNumerically("~", 5.0/8.0, 1e-12))
			Expect(s.Rel[2]).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("propagates a zero weighted gradient as non-finite", func() {
			f := uniformFields(1, 0)
			f[particles.FieldVolume] = []float64{1}
			f[particles.FieldMVX] = []float64{1}
			z, err := particles.New(f, particles.DefaultRingThreshold)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsInf(z.Rel[0], 1)).To(BeTrue())

			f[particles.FieldMVX] = []float64{0}
			z, err = particles.New(f, particles.DefaultRingThreshold)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(z.Rel[0])).To(BeTrue())
		})
	})

	Describe("ring indices", func() {
		It("keeps curvatures strictly above the threshold", func() {
			Expect(particles.RingIndices([]float64{0, 1, 1.5, 2, 0.5}, 1)).To(Equal([]int{2, 3}))
		})

		It("stays inside [0, n)", func() {
			f := uniformFields(5, 0)
			f[particles.FieldCurvature] = []float64{3, 0, 2, 0, 9}
			s, err := particles.New(f, particles.DefaultRingThreshold)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Ring).To(Equal([]int{0, 2, 4}))
			for _, i := range s.Ring {
				Expect(i).To(BeNumerically(">=", 0))
				Expect(i).To(BeNumerically("<", s.N))
			}
		})
	})

	Describe("ExpectedCurvature", func() {
		It("is 2 for the unit sphere volume", func() {
			Expect(particles.ExpectedCurvature(4 * math.Pi / 3)).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("halves when the radius doubles", func() {
			Expect(particles.ExpectedCurvature(32 * math.Pi / 3)).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Describe("selection", func() {
		var s *particles.Snapshot

		BeforeEach(func() {
			f := uniformFields(3, 1)
			f[particles.FieldX] = []float64{1, -1, 1}
			f[particles.FieldY] = []float64{1, 1, -1}
			f[particles.FieldZ] = []float64{0, 0, 0}
			var err error
			s, err = particles.New(f, particles.DefaultRingThreshold)
			Expect(err).NotTo(HaveOccurred())
		})

		It("sums the momentum rate over the quarter", func() {
			Expect(s.SumMomentum(particles.Quarter)).To(Equal([3]float64{1, 1, 1}))
		})

		It("includes particles lying on the boundary planes", func() {
			Expect(particles.Quarter(0, 0, -3)).To(BeTrue())
			Expect(particles.Quarter(0, -1e-9, 0)).To(BeFalse())
		})

		It("combines predicates", func() {
			Expect(s.Select()).To(Equal([]int{0, 1, 2}))
			Expect(s.Select(particles.All, particles.Quarter)).To(Equal([]int{0}))
		})

		It("selects a radial shell around a centre", func() {
			shell := particles.Shell([3]float64{0, 0, 0}, math.Sqrt2, 0.1, 0)
			Expect(s.Select(shell)).To(Equal([]int{0, 1, 2}))

			narrow := particles.Shell([3]float64{1, 1, 0}, 2, 0.2, 0)
			Expect(s.Select(narrow)).To(Equal([]int{1, 2}))

			flat := particles.Shell([3]float64{0, 0, 5}, math.Sqrt2, 0.1, 1)
			Expect(s.Select(flat)).To(BeEmpty())
		})

		It("computes the bounding box", func() {
			b := s.Bounds()
			Expect(b.Min).To(Equal([3]float64{-1, -1, 0}))
			Expect(b.Max).To(Equal([3]float64{1, 1, 0}))
			Expect(b.At(0.5, 0.5, 0.5)).To(Equal([3]float64{0, 0, 0}))
		})
	})

	Describe("InputError", func() {
		It("unwraps to the sentinel", func() {
			err := &particles.InputError{Path: "case/x.h5", Wrapped: particles.ErrMissingInput}
			Expect(errors.Is(err, particles.ErrMissingInput)).To(BeTrue())
			Expect(err.Error()).To(HavePrefix("case/x.h5: "))
		})
	})
})
