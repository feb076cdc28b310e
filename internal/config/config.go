package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTrailingRows is the number of final samples discarded from both
// companion tables. The last rows written by the solver are incomplete.
const DefaultTrailingRows = 5

const (
	DefaultRingThreshold    = 1.0
	DefaultTimeColumn       = 0
	DefaultPressureColumn   = 24
	DefaultKineticColumn    = 3
	DefaultDPI              = 500
	DefaultFluidGroup       = "Fluid#0"
	DefaultCenterFraction   = 0.5
	DefaultViewWidth        = 60
	DefaultViewHeight       = 20
	DefaultConservationGlob = "FluidConservation*"
	DefaultKinematicsGlob   = "Solid_Kinematics*"
)

// Selection kinds for the scatter subset.
const (
	SelectRing    = "ring"
	SelectQuarter = "quarter"
	SelectShell   = "shell"
	SelectAll     = "all"
)

type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Selection SelectionConfig `yaml:"selection"`
	View      ViewConfig      `yaml:"view"`
}

type OutputConfig struct {
	ExportVector bool   `yaml:"export_vector"`
	ExportRaster bool   `yaml:"export_raster"`
	DPI          int    `yaml:"dpi"`
	GraphsDir    string `yaml:"graphs_dir"`
	Preview      bool   `yaml:"preview"`
}

type AnalysisConfig struct {
	FluidGroup       string  `yaml:"fluid_group"`
	RingThreshold    float64 `yaml:"ring_threshold"`
	TrailingRows     int     `yaml:"trailing_rows_dropped"`
	TimeColumn       int     `yaml:"time_column"`
	PressureColumn   int     `yaml:"pressure_column"`
	KineticColumn    int     `yaml:"kinetic_energy_column"`
	ConservationGlob string  `yaml:"conservation_glob"`
	KinematicsGlob   string  `yaml:"kinematics_glob"`
}

type SelectionConfig struct {
	Kind           string  `yaml:"kind"`
	Radius         float64 `yaml:"radius"`
	Width          float64 `yaml:"width"`
	CenterFraction float64 `yaml:"center_fraction"`
	ZHalfWidth     float64 `yaml:"z_half_width"`
}

type ViewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			ExportVector: true,
			ExportRaster: true,
			DPI:          DefaultDPI,
		},
		Analysis: AnalysisConfig{
			FluidGroup:       DefaultFluidGroup,
			RingThreshold:    DefaultRingThreshold,
			TrailingRows:     DefaultTrailingRows,
			TimeColumn:       DefaultTimeColumn,
			PressureColumn:   DefaultPressureColumn,
			KineticColumn:    DefaultKineticColumn,
			ConservationGlob: DefaultConservationGlob,
			KinematicsGlob:   DefaultKinematicsGlob,
		},
		Selection: SelectionConfig{
			Kind:           SelectRing,
			CenterFraction: DefaultCenterFraction,
		},
		View: ViewConfig{
			Width:  DefaultViewWidth,
			Height: DefaultViewHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the loader or plotter cannot work with.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.TrailingRows < 0 {
		return fmt.Errorf("trailing_rows_dropped must be >= 0, got %d", a.TrailingRows)
	}
	if a.TimeColumn < 0 || a.PressureColumn < 0 || a.KineticColumn < 0 {
		return fmt.Errorf("column indices must be >= 0")
	}
	if c.Output.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.Output.DPI)
	}
	switch c.Selection.Kind {
	case SelectRing, SelectQuarter, SelectAll:
	case SelectShell:
		if c.Selection.Width <= 0 {
			return fmt.Errorf("shell selection needs a positive width")
		}
	default:
		return fmt.Errorf("unknown selection kind %q", c.Selection.Kind)
	}
	return nil
}
