// Package graphs renders the time series of an evolving case, to image
// files with gonum/plot and to the terminal with asciigraph.
package graphs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/sphpost/internal/log"
	"github.com/san-kum/sphpost/internal/particles"
	"github.com/san-kum/sphpost/internal/storage"
)

const (
	figureWidth  = 6.4 * vg.Inch
	figureHeight = 4.8 * vg.Inch
)

var orangeRed = color.RGBA{R: 255, G: 69, B: 0, A: 255}

// Options select the output formats.
type Options struct {
	ExportVector bool // pdf
	ExportRaster bool // png
	DPI          int
}

// Plotter writes figures for one case.
type Plotter struct {
	dir    string
	suffix string
	opts   Options
}

func NewPlotter(dir, suffix string, opts Options) *Plotter {
	return &Plotter{dir: dir, suffix: suffix, opts: opts}
}

// Figure describes one line plot against time.
type Figure struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Color  color.Color
	Y      []float64
}

// PressureFigure is the tracked-particle pressure against time.
func PressureFigure(ts *storage.TimeSeries) Figure {
	return Figure{
		Name:   "Pt",
		Title:  "Pressure evolution",
		XLabel: "t [s]",
		YLabel: "P [Pa]",
		Width:  vg.Points(0.25),
		Color:  color.RGBA{R: 31, G: 119, B: 180, A: 255},
		Y:      ts.Pressure,
	}
}

// KineticEnergyFigure is the kinetic energy against time.
func KineticEnergyFigure(ts *storage.TimeSeries) Figure {
	return Figure{
		Name:   "EC",
		Title:  "Kinetic energy evolution",
		XLabel: "t [s]",
		YLabel: "EC",
		Width:  vg.Points(1),
		Color:  orangeRed,
		Y:      ts.KineticEnergy,
	}
}

// PlotCase draws both time series of an evolving case and returns the files
// written. A case that is not evolving is skipped with ErrNotEvolving.
func (p *Plotter) PlotCase(c *storage.Case) ([]string, error) {
	if !c.Evolving || c.Series.Len() == 0 {
		return nil, particles.ErrNotEvolving
	}
	files := make([]string, 0, 4)
	for _, fig := range []Figure{PressureFigure(c.Series), KineticEnergyFigure(c.Series)} {
		written, err := p.Plot(c.Series.Time, fig)
		if err != nil {
			return files, fmt.Errorf("%s: %w", fig.Name, err)
		}
		files = append(files, written...)
	}
	return files, nil
}

// Plot draws fig against t, x-limited to [0, final time], and saves it in
// every enabled format as <name>_<suffix>.<ext>.
func (p *Plotter) Plot(t []float64, fig Figure) ([]string, error) {
	if len(t) == 0 {
		return nil, errors.New("no samples to plot")
	}
	if len(t) != len(fig.Y) {
		return nil, fmt.Errorf("%w: %d times for %d values", particles.ErrMalformedData, len(t), len(fig.Y))
	}

	pl := plot.New()
	pl.Title.Text = fig.Title
	pl.X.Label.Text = fig.XLabel
	pl.Y.Label.Text = fig.YLabel
	pl.X.Min = 0
	pl.X.Max = lastFinite(t)
	pl.Add(plotter.NewGrid())

	for _, run := range finiteRuns(t, fig.Y) {
		line, err := plotter.NewLine(run)
		if err != nil {
			return nil, err
		}
		line.Color = fig.Color
		line.Width = fig.Width
		pl.Add(line)
	}

	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create graphs dir: %w", err)
	}

	files := make([]string, 0, 2)
	base := filepath.Join(p.dir, fig.Name+"_"+p.suffix)
	if p.opts.ExportVector {
		name := base + ".pdf"
		if err := pl.Save(figureWidth, figureHeight, name); err != nil {
			return files, fmt.Errorf("save pdf: %w", err)
		}
		files = append(files, name)
	}
	if p.opts.ExportRaster {
		name := base + ".png"
		if err := savePNG(pl, name, p.opts.DPI); err != nil {
			return files, fmt.Errorf("save png: %w", err)
		}
		files = append(files, name)
	}

	log.Debugw("figure written", "name", fig.Name, "files", files)
	return files, nil
}

// finiteRuns splits the series at every non-finite sample, so gaps are left
// where the solver wrote NaN or Inf.
func finiteRuns(t, y []float64) []plotter.XYs {
	runs := make([]plotter.XYs, 0, 1)
	var cur plotter.XYs
	for i := range t {
		if !finite(t[i]) || !finite(y[i]) {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: t[i], Y: y[i]})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

func lastFinite(v []float64) float64 {
	for i := len(v) - 1; i >= 0; i-- {
		if finite(v[i]) {
			return v[i]
		}
	}
	return 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func savePNG(pl *plot.Plot, name string, dpi int) error {
	c := vgimg.NewWith(vgimg.UseWH(figureWidth, figureHeight), vgimg.UseDPI(dpi))
	pl.Draw(draw.New(c))

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}
