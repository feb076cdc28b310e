package graphs

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sphpost/internal/storage"
)

// Preview renders both series as terminal line charts.
func Preview(ts *storage.TimeSeries, width int) []string {
	if ts.Len() == 0 {
		return nil
	}
	return []string{
		asciigraph.Plot(ts.Pressure,
			asciigraph.Height(10),
			asciigraph.Width(width),
			asciigraph.Caption("tracked pressure P [Pa]"),
		),
		asciigraph.Plot(ts.KineticEnergy,
			asciigraph.Height(10),
			asciigraph.Width(width),
			asciigraph.Caption("kinetic energy EC"),
		),
	}
}
