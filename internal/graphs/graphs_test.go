package graphs

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/sphpost/internal/particles"
	"github.com/san-kum/sphpost/internal/storage"
)

func series() *storage.TimeSeries {
	return &storage.TimeSeries{
		Time:          []float64{0, 0.1, 0.2, 0.3},
		Pressure:      []float64{10, 12, 9, 11},
		KineticEnergy: []float64{0, 1e-3, 2e-3, 1.5e-3},
	}
}

func TestPlotCase_NotEvolving(t *testing.T) {
	p := NewPlotter(t.TempDir(), "r05-dt1", Options{ExportVector: true, ExportRaster: true, DPI: 50})

	for _, c := range []*storage.Case{
		{Evolving: false},
		{Evolving: true, Series: &storage.TimeSeries{}},
	} {
		files, err := p.PlotCase(c)
		if !errors.Is(err, particles.ErrNotEvolving) {
			t.Errorf("expected ErrNotEvolving, got %v", err)
		}
		if len(files) != 0 {
			t.Errorf("expected no files, got %v", files)
		}
	}
}

func TestPlotCase_WritesBothFormats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphs")
	p := NewPlotter(dir, "r05-dt1", Options{ExportVector: true, ExportRaster: true, DPI: 50})

	files, err := p.PlotCase(&storage.Case{Evolving: true, Series: series()})
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}

	want := []string{"Pt_r05-dt1.pdf", "Pt_r05-dt1.png", "EC_r05-dt1.pdf", "EC_r05-dt1.png"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), files)
	}
	for i, name := range want {
		if filepath.Base(files[i]) != name {
			t.Errorf("file %d: expected %s, got %s", i, name, files[i])
		}
		info, err := os.Stat(files[i])
		if err != nil || info.Size() == 0 {
			t.Errorf("%s missing or empty: %v", files[i], err)
		}
	}
}

func TestPlot_RasterOnly(t *testing.T) {
	dir := t.TempDir()
	p := NewPlotter(dir, "case", Options{ExportRaster: true, DPI: 50})

	files, err := p.Plot(series().Time, KineticEnergyFigure(series()))
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], ".png") {
		t.Errorf("expected one png, got %v", files)
	}
}

func TestPlot_LengthMismatch(t *testing.T) {
	p := NewPlotter(t.TempDir(), "case", Options{ExportVector: true})
	fig := PressureFigure(series())
	fig.Y = fig.Y[:2]
	if _, err := p.Plot(series().Time, fig); !errors.Is(err, particles.ErrMalformedData) {
		t.Errorf("expected ErrMalformedData, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	if out := Preview(&storage.TimeSeries{}, 40); out != nil {
		t.Errorf("expected no preview for empty series, got %v", out)
	}
	out := Preview(series(), 40)
	if len(out) != 2 {
		t.Fatalf("expected 2 charts, got %d", len(out))
	}
	if !strings.Contains(out[0], "tracked pressure") || !strings.Contains(out[1], "kinetic energy") {
		t.Errorf("missing captions:\n%s\n%s", out[0], out[1])
	}
}

func TestPlotCase_NonFiniteSamples(t *testing.T) {
	ts := series()
	ts.Pressure[1] = math.NaN()
	ts.KineticEnergy[2] = math.Inf(1)
	p := NewPlotter(t.TempDir(), "r05-dt1", Options{ExportVector: true, ExportRaster: true, DPI: 50})

	files, err := p.PlotCase(&storage.Case{Evolving: true, Series: ts})
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if len(files) != 4 {
		t.Errorf("expected 4 files, got %v", files)
	}
}

func TestFiniteRuns(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		t, y []float64
		want []int
	}{
		{"all finite", []float64{0, 1, 2}, []float64{1, 2, 3}, []int{3}},
		{"gap in the middle", []float64{0, 1, 2, 3}, []float64{1, nan, 3, 4}, []int{1, 2}},
		{"non-finite time", []float64{0, math.Inf(1), 2}, []float64{1, 2, 3}, []int{1, 1}},
		{"nothing finite", []float64{0, 1}, []float64{nan, nan}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := finiteRuns(tt.t, tt.y)
			if len(runs) != len(tt.want) {
				t.Fatalf("expected %d runs, got %d", len(tt.want), len(runs))
			}
			for i, n := range tt.want {
				if len(runs[i]) != n {
					t.Errorf("run %d: expected %d points, got %d", i, n, len(runs[i]))
				}
			}
		})
	}
}

func TestLastFinite(t *testing.T) {
	if v := lastFinite([]float64{0, 0.5, math.NaN()}); v != 0.5 {
		t.Errorf("expected 0.5, got %v", v)
	}
	if v := lastFinite([]float64{math.NaN()}); v != 0 {
		t.Errorf("expected 0, got %v", v)
	}
}
