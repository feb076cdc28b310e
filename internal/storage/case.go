package storage

import (
	"errors"
	"path/filepath"

	"github.com/san-kum/sphpost/internal/config"
	"github.com/san-kum/sphpost/internal/h5"
	"github.com/san-kum/sphpost/internal/log"
	"github.com/san-kum/sphpost/internal/particles"
)

// Case is one analysed snapshot with its companions and output layout.
type Case struct {
	Layout
	Snapshot      *particles.Snapshot
	Conservation  string
	Kinematics    string
	HasKinematics bool
	Evolving      bool
	Series        *TimeSeries
}

// Load reads the snapshot at path together with its companion tables.
func Load(path string, cfg *config.Config) (*Case, error) {
	layout, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if cfg.Output.GraphsDir != "" {
		layout.Graphs = cfg.Output.GraphsDir
	}
	log.Debugw("resolved case layout", "dir", layout.Dir, "graphs", layout.Graphs,
		"suffix", layout.Suffix, "h5_files", layout.H5Count)

	group := cfg.Analysis.FluidGroup
	if group == "" {
		group = h5.DefaultFluidGroup
	}
	fields, err := h5.ReadGroup(layout.Path, group)
	if err != nil {
		return nil, err
	}
	snap, err := particles.New(fields, cfg.Analysis.RingThreshold)
	if err != nil {
		return nil, &particles.InputError{Path: layout.Path, Wrapped: err}
	}

	c := &Case{Layout: layout, Snapshot: snap}
	if err := c.loadCompanions(cfg.Analysis); err != nil {
		return nil, err
	}

	log.Infow("loaded snapshot", "file", layout.File, "particles", snap.N,
		"ring", len(snap.Ring), "evolving", c.Evolving)
	return c, nil
}

func (c *Case) loadCompanions(a config.AnalysisConfig) error {
	conservation, err := FindCompanion(c.Dir, a.ConservationGlob)
	if err != nil {
		return err
	}
	c.Conservation = conservation

	cFormat, err := FormatFor(conservation)
	if err != nil {
		return err
	}
	ct, err := ReadTable(conservation, cFormat)
	if err != nil {
		return err
	}

	kinematics, err := FindCompanion(c.Dir, a.KinematicsGlob)
	switch {
	case errors.Is(err, particles.ErrMissingInput):
		log.Debugw("no kinematics companion", "dir", c.Dir, "pattern", a.KinematicsGlob)
		return nil
	case err != nil:
		return err
	}
	c.Kinematics = kinematics
	c.HasKinematics = true

	kFormat, err := FormatFor(kinematics)
	if err != nil {
		return err
	}
	// The kinematics export always carries a single header line.
	kFormat.SkipRows = 1

	kt, err := ReadTable(kinematics, kFormat)
	if err != nil {
		return err
	}
	c.Evolving = kt.Rows() > 1
	if !c.Evolving {
		return nil
	}

	c.Series, err = BuildTimeSeries(kt, ct, SeriesColumns{
		Time:          a.TimeColumn,
		Pressure:      a.PressureColumn,
		KineticEnergy: a.KineticColumn,
		Drop:          a.TrailingRows,
	})
	return err
}

// ID names the case in saved analyses and figure files.
func (c *Case) ID() string {
	if c.Suffix != "" {
		return c.Suffix
	}
	return filepath.Base(c.Dir)
}
