package storage

import (
	"github.com/san-kum/sphpost/internal/log"
)

// TimeSeries holds the tracked-particle pressure and the kinetic energy of an
// evolving case, sample by sample.
type TimeSeries struct {
	Time          []float64
	Pressure      []float64
	KineticEnergy []float64
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Time)
}

// FinalTime returns the last sample time, or 0 when there are no samples.
func (ts *TimeSeries) FinalTime() float64 {
	if ts.Len() == 0 {
		return 0
	}
	return ts.Time[len(ts.Time)-1]
}

// SeriesColumns names the columns used to build a TimeSeries.
type SeriesColumns struct {
	Time, Pressure, KineticEnergy int
	Drop                          int
}

// BuildTimeSeries extracts the series from the kinematics and conservation
// tables. When the tables differ in length the series are cut to the
// shorter one.
func BuildTimeSeries(kinematics, conservation *Table, cols SeriesColumns) (*TimeSeries, error) {
	t, err := kinematics.Column(cols.Time, cols.Drop)
	if err != nil {
		return nil, err
	}
	p, err := kinematics.Column(cols.Pressure, cols.Drop)
	if err != nil {
		return nil, err
	}
	ke, err := conservation.Column(cols.KineticEnergy, cols.Drop)
	if err != nil {
		return nil, err
	}

	n := len(t)
	if len(ke) != n {
		log.Warnw("companion tables differ in length, truncating",
			"kinematics", kinematics.Path, "kinematics_rows", len(t),
			"conservation", conservation.Path, "conservation_rows", len(ke))
		if len(ke) < n {
			n = len(ke)
		}
	}

	return &TimeSeries{
		Time:          t[:n],
		Pressure:      p[:n],
		KineticEnergy: ke[:n],
	}, nil
}
