package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sphpost/internal/analysis"
	"github.com/san-kum/sphpost/internal/config"
	"github.com/san-kum/sphpost/internal/export"
	"github.com/san-kum/sphpost/internal/graphs"
	"github.com/san-kum/sphpost/internal/log"
	"github.com/san-kum/sphpost/internal/metrics"
	"github.com/san-kum/sphpost/internal/particles"
	"github.com/san-kum/sphpost/internal/report"
	"github.com/san-kum/sphpost/internal/storage"
	"github.com/san-kum/sphpost/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	// Output overrides
	noPDF     bool
	noPNG     bool
	dpi       int
	graphsDir string
	preview   bool
	// Analysis overrides
	threshold float64
	selection string
	// report
	save bool
	// scatter
	svgFile string
	yaw     float64
	pitch   float64
	zoom    float64
	noAxes  bool
)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sphpost [file.h5]",
		Short:         "post-processing for SPH particle snapshots",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(debug)
		},
		RunE: fullPass,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".sphpost", "directory for saved analyses")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&debug, "debug", false, "verbose logging")
	pf.BoolVar(&noPDF, "no-pdf", false, "do not write vector figures")
	pf.BoolVar(&noPNG, "no-png", false, "do not write raster figures")
	pf.IntVar(&dpi, "dpi", config.DefaultDPI, "raster figure resolution")
	pf.StringVar(&graphsDir, "graphs", "", "override the graphs directory")
	pf.Float64Var(&threshold, "threshold", config.DefaultRingThreshold, "curvature above which a particle is on the interface")
	pf.StringVar(&selection, "select", config.SelectRing, "particle subset for scatter/view (ring, quarter, shell, all)")

	reportCmd := &cobra.Command{
		Use:   "report [file.h5]",
		Short: "print the snapshot summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().BoolVar(&save, "save", false, "store the summary and ring particles")

	plotCmd := &cobra.Command{
		Use:   "plot [file.h5]",
		Short: "plot pressure and kinetic energy against time",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().BoolVar(&preview, "preview", false, "also draw the series in the terminal")

	scatterCmd := &cobra.Command{
		Use:   "scatter [file.h5]",
		Short: "draw the selected particles in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runScatter,
	}
	scatterCmd.Flags().StringVar(&svgFile, "svg", "", "also write the drawing to an svg file")
	scatterCmd.Flags().Float64Var(&yaw, "yaw", 0.6, "rotation about the vertical axis (rad)")
	scatterCmd.Flags().Float64Var(&pitch, "pitch", -0.5, "rotation about the horizontal axis (rad)")
	scatterCmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor")
	scatterCmd.Flags().BoolVar(&noAxes, "no-axes", false, "hide the axes")

	viewCmd := &cobra.Command{
		Use:   "view [file.h5]",
		Short: "interactive 3d view of the selected particles",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [file.h5]",
		Short: "frequency analysis of the tracked pressure",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpectrum,
	}

	infoCmd := &cobra.Command{
		Use:   "info [file.h5]",
		Short: "show the case layout and the loaded fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved analyses",
		Args:  cobra.NoArgs,
		RunE:  listAnalyses,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [analysis_id]",
		Short: "export a saved analysis to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(reportCmd, plotCmd, scatterCmd, viewCmd, spectrumCmd, infoCmd, listCmd, exportJSONCmd, presetsCmd)

	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, viz.Warning.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// loadConfig starts from the defaults, applies the preset, then the config
// file, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("no-pdf") {
		cfg.Output.ExportVector = !noPDF
	}
	if flags.Changed("no-png") {
		cfg.Output.ExportRaster = !noPNG
	}
	if flags.Changed("dpi") {
		cfg.Output.DPI = dpi
	}
	if flags.Changed("graphs") {
		cfg.Output.GraphsDir = graphsDir
	}
	if flags.Changed("preview") {
		cfg.Output.Preview = preview
	}
	if flags.Changed("threshold") {
		cfg.Analysis.RingThreshold = threshold
	}
	if flags.Changed("select") {
		cfg.Selection.Kind = selection
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCase(cmd *cobra.Command, path string) (*storage.Case, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := storage.Load(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func printBanner(c *storage.Case) {
	rule := "# ----------------------------------------------------"
	fmt.Println(viz.Subtle.Render(rule))
	fmt.Println(viz.Title.Render("# " + c.Path))
	fmt.Println(viz.Subtle.Render(rule))
	fmt.Printf("# data directory     : %s\n", c.Dir)
	fmt.Printf("# h5 file name       : %s\n", c.File)
	fmt.Printf("# graphs path        : %s\n", c.Graphs)
	fmt.Printf("# graphs name suffix : %s\n", c.Suffix)
}

// fullPass prints the banner, plots the time series of an evolving case and
// prints the summary.
func fullPass(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	c, cfg, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	printBanner(c)

	if c.Evolving {
		if err := plotCase(c, cfg); err != nil {
			log.Warnw("plotting failed, continuing with the summary", "case", c.ID(), "error", err)
		}
	} else {
		log.Infow("single timestep, skipping time series", "case", c.ID())
	}

	return report.Write(os.Stdout, report.Summarize(c.Snapshot))
}

func plotCase(c *storage.Case, cfg *config.Config) error {
	p := graphs.NewPlotter(c.Graphs, c.Suffix, graphs.Options{
		ExportVector: cfg.Output.ExportVector,
		ExportRaster: cfg.Output.ExportRaster,
		DPI:          cfg.Output.DPI,
	})
	files, err := p.PlotCase(c)
	if errors.Is(err, particles.ErrNotEvolving) {
		log.Warnw("case is not evolving, nothing to plot", "case", c.ID())
		return nil
	}
	if err != nil {
		return err
	}
	for _, f := range files {
		log.Infow("figure written", "file", f)
	}

	if cfg.Output.Preview {
		for _, chart := range graphs.Preview(c.Series, 80) {
			fmt.Println(chart)
			fmt.Println()
		}
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	c, _, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	sum := report.Summarize(c.Snapshot)
	if err := report.Write(os.Stdout, sum); err != nil {
		return err
	}

	var series map[string]float64
	if c.Evolving {
		series = metrics.Evaluate(c.Series, metrics.Default()...)
		if err := printSeriesMetrics(series); err != nil {
			return err
		}
	}
	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(c, sum, series)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	fmt.Printf("\nsaved: %s\n", id)
	return nil
}

func printSeriesMetrics(m map[string]float64) error {
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, metric := range metrics.Default() {
		fmt.Fprintf(w, "%s\t%s\n", metric.Name(), report.FormatFloat(m[metric.Name()]))
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	c, cfg, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	return plotCase(c, cfg)
}

// selectParticles returns the indices picked by the configured selection.
func selectParticles(s *particles.Snapshot, sel config.SelectionConfig) []int {
	switch sel.Kind {
	case config.SelectQuarter:
		return s.Select(particles.Quarter)
	case config.SelectShell:
		f := sel.CenterFraction
		center := s.Bounds().At(f, f, f)
		return s.Select(particles.Shell(center, sel.Radius, sel.Width, sel.ZHalfWidth))
	case config.SelectAll:
		return s.Select(particles.All)
	}
	return s.Ring
}

func sceneFor(c *storage.Case, cfg *config.Config) *viz.Scene {
	idx := selectParticles(c.Snapshot, cfg.Selection)
	if len(idx) == 0 {
		log.Warnw("selection is empty", "kind", cfg.Selection.Kind, "case", c.ID())
	}
	return viz.NewScene(c.Snapshot.Pos, idx)
}

func runScatter(cmd *cobra.Command, args []string) error {
	c, cfg, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	scene := sceneFor(c, cfg)

	cam := viz.NewCamera()
	cam.RotX, cam.RotY, cam.Zoom = pitch, yaw, zoom
	canvas := viz.NewCanvas(cfg.View.Width, cfg.View.Height)
	visible := viz.Render(canvas, scene, cam, !noAxes)

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s: %s selection", c.ID(), cfg.Selection.Kind)))
	fmt.Print(viz.Dots.Render(canvas.String()))
	fmt.Println(viz.Metric("particles", fmt.Sprintf("%d/%d", visible, len(scene.Points))) + "  " +
		viz.Metric("radius", report.FormatFloat(scene.Radius)))

	if svgFile != "" {
		if err := export.WriteSVG(svgFile, canvas, 4, c.ID()); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		log.Infow("svg written", "file", svgFile)
	}
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	c, cfg, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s: %s selection", c.ID(), cfg.Selection.Kind)
	v := viz.NewViewer(sceneFor(c, cfg), title, cfg.View.Width, cfg.View.Height)
	return viz.RunViewer(v)
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	c, _, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	if !c.Evolving || c.Series.Len() == 0 {
		return fmt.Errorf("%s: %w", c.ID(), particles.ErrNotEvolving)
	}

	spec, err := analysis.PowerSpectrum(c.Series.Time, c.Series.Pressure)
	if err != nil {
		return err
	}
	freq, amp := spec.Dominant()

	fmt.Printf("samples: %d  dt: %s s\n", c.Series.Len(), report.FormatFloat(spec.Dt))
	fmt.Printf("dominant frequency: %.4f Hz (period %.4f s, amplitude %.4g)\n\n", freq, 1/freq, amp)

	// skip the zero-frequency bin
	data := spec.Amplitude[1:]
	if len(data) > 200 {
		data = data[:200]
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("pressure amplitude spectrum"),
	))
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	c, _, err := loadCase(cmd, args[0])
	if err != nil {
		return err
	}
	printBanner(c)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "particles\t%d\n", c.Snapshot.N)
	fmt.Fprintf(w, "ring\t%d (kappa > %s)\n", len(c.Snapshot.Ring), report.FormatFloat(c.Snapshot.RingThreshold))
	fmt.Fprintf(w, "h5 files in dir\t%d\n", c.H5Count)
	fmt.Fprintf(w, "conservation\t%s\n", c.Conservation)
	kin := "none"
	if c.HasKinematics {
		kin = c.Kinematics
	}
	fmt.Fprintf(w, "kinematics\t%s\n", kin)
	fmt.Fprintf(w, "evolving\t%v\n", c.Evolving)
	if c.Evolving {
		fmt.Fprintf(w, "samples\t%d (final time %s s)\n", c.Series.Len(), report.FormatFloat(c.Series.FinalTime()))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	return report.WriteFields(os.Stdout, c.Snapshot)
}

func listAnalyses(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no saved analyses")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCASE\tTIME\tPARTICLES\tRING\tEVOLVING")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%v\n",
			run.ID,
			run.Case,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.RingSize,
			run.Evolving,
		)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).Export(os.Stdout, args[0])
}
