package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/sphpost/internal/particles"
)

func snapshot(t *testing.T, n int, set func(particles.Fields)) *particles.Snapshot {
	t.Helper()
	f := particles.Fields{}
	for _, name := range particles.RequiredFields {
		f[name] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		f[particles.FieldVolume][i] = 1
		f[particles.FieldWGRPX][i] = 1
	}
	set(f)
	s, err := particles.New(f, particles.DefaultRingThreshold)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return s
}

func TestNewStats(t *testing.T) {
	st := NewStats([]float64{3, 1, 2})
	if st.Min != 1 || st.Mean != 2 || st.Max != 3 {
		t.Errorf("unexpected stats %+v", st)
	}

	for name, values := range map[string][]float64{
		"empty":    {},
		"with NaN": {1, math.NaN(), 3},
	} {
		st := NewStats(values)
		if !math.IsNaN(st.Min) || !math.IsNaN(st.Mean) || !math.IsNaN(st.Max) {
			t.Errorf("%s: expected NaN stats, got %+v", name, st)
		}
	}

	inf := NewStats([]float64{1, math.Inf(1)})
	if inf.Min != 1 || !math.IsInf(inf.Max, 1) || !math.IsInf(inf.Mean, 1) {
		t.Errorf("unexpected stats with Inf: %+v", inf)
	}
}

func TestSummarize(t *testing.T) {
	s := snapshot(t, 4, func(f particles.Fields) {
		f[particles.FieldX] = []float64{1, -1, 1, 0}
		f[particles.FieldY] = []float64{1, 1, -1, 0}
		f[particles.FieldMVX] = []float64{1, 1, 1, 0.5}
		f[particles.FieldMVY] = []float64{1, 1, 1, 0}
		f[particles.FieldMVZ] = []float64{1, 1, 1, 0}
		f[particles.FieldCurvature] = []float64{0, 2, 4, 1}
		f[particles.FieldPressure] = []float64{100, -3, 7, 50}
		f[particles.FieldVolume] = []float64{math.Pi / 3, math.Pi / 3, math.Pi / 3, math.Pi / 3}
	})

	sum := Summarize(s)
	if sum.RingSize != 2 {
		t.Errorf("expected ring of 2, got %d", sum.RingSize)
	}
	if sum.QuarterSum != [3]float64{1.5, 1, 1} {
		t.Errorf("unexpected quarter sum %v", sum.QuarterSum)
	}
	if sum.Pressure.Min != -3 || sum.Pressure.Max != 7 {
		t.Errorf("unexpected pressure range %+v", sum.Pressure)
	}
	if math.Abs(sum.ExpectedCurvature-2) > 1e-12 {
		t.Errorf("expected curvature 2, got %v", sum.ExpectedCurvature)
	}
	if sum.Kappa.Mean != 3 {
		t.Errorf("expected mean kappa 3, got %v", sum.Kappa.Mean)
	}
	// ring particles have |MV| = sqrt(3) and |WGRP| = 1
	want := 100 * math.Sqrt(3)
	if math.Abs(sum.Epsilon.Max-want) > 1e-9 {
		t.Errorf("expected epsilon %v, got %v", want, sum.Epsilon.Max)
	}
}

func TestWrite(t *testing.T) {
	sum := &Summary{
		QuarterSum:        [3]float64{1, 0.5, -2},
		Pressure:          Stats{Min: -3, Max: 7.25},
		ExpectedCurvature: 2,
		Kappa:             Stats{1.5, 2.25, 3},
		Epsilon:           Stats{0.1234, 12.5, 100},
	}

	var buf bytes.Buffer
	if err := Write(&buf, sum); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	expected := strings.Join([]string{
		"Quarter sum of Dmv/Dt        : [ 1.0 , 0.5 , -2.0 ]",
		"Pressure range               : [ -3.0 , 7.25 ]",
		"Expected curvature           : 2.0",
		" _______________________________________",
		"|         |         |         |         |",
		"|         |   min   |  mean   |   max   |",
		"|_________|_________|_________|_________|",
		"|         |         |         |         |",
		"| kappa   |   1.500 |   2.250 |   3.000 |",
		"|         |         |         |         |",
		"| epsilon |   0.123 |  12.500 | 100.000 |",
		"|_________|_________|_________|_________|",
		"",
	}, "\n")

	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestWrite_NonFinite(t *testing.T) {
	s := snapshot(t, 2, func(f particles.Fields) {
		f[particles.FieldCurvature] = []float64{2, 3}
		f[particles.FieldMVX] = []float64{1, 0}
		f[particles.FieldWGRPX] = []float64{0, 0}
	})

	var buf bytes.Buffer
	if err := Write(&buf, Summarize(s)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "| epsilon |     nan |     nan |     nan |") {
		t.Errorf("expected nan cells, got:\n%s", buf.String())
	}
}

func TestWrite_EmptyRing(t *testing.T) {
	s := snapshot(t, 3, func(f particles.Fields) {})

	var buf bytes.Buffer
	if err := Write(&buf, Summarize(s)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Pressure range               : [ nan , nan ]") {
		t.Errorf("expected nan pressure range, got:\n%s", buf.String())
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1, "  1.000"},
		{-12.3456, "-12.346"},
		{math.NaN(), "    nan"},
		{math.Inf(1), "    inf"},
		{math.Inf(-1), "   -inf"},
	}
	for _, tt := range tests {
		if got := cell(tt.v); got != tt.want {
			t.Errorf("cell(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{1e-5, "1e-05"},
		{1e16, "1e+16"},
		{123456.0, "123456.0"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.v); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestHeadTail(t *testing.T) {
	if got := HeadTail([]float64{1, 2}, 3); got != "[ 1.0   2.0 ]" {
		t.Errorf("short vector: %q", got)
	}
	got := HeadTail([]float64{1, 2, 3, 4, 5, 6, 7}, 2)
	if got != "[ 1.0   2.0   ...   6.0   7.0 ]" {
		t.Errorf("long vector: %q", got)
	}
}

func TestWriteFields(t *testing.T) {
	s := snapshot(t, 2, func(f particles.Fields) {})
	var buf bytes.Buffer
	if err := WriteFields(&buf, s); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(particles.RequiredFields)+1 {
		t.Errorf("expected %d lines, got %d", len(particles.RequiredFields)+1, len(lines))
	}
	if !strings.HasPrefix(lines[1], "X     : [ ") {
		t.Errorf("unexpected line %q", lines[1])
	}
}
