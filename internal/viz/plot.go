package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nbodysim/internal/nbody"
)

var axisNames = [3]string{"x", "y", "z"}

// AxisPlots renders one chart per coordinate axis with a coloured series
// per body, plotted against the recorded step. Bodies without samples are
// left out. Returns nil when snaps is empty.
func AxisPlots(snaps []nbody.Snapshot, width, height int) []string {
	var tracks [nbody.NumBodies][3][]float64
	for _, sn := range snaps {
		if sn.Planet < 0 || sn.Planet >= nbody.NumBodies {
			continue
		}
		t := &tracks[sn.Planet]
		t[0] = append(t[0], sn.X)
		t[1] = append(t[1], sn.Y)
		t[2] = append(t[2], sn.Z)
	}

	var (
		bodies  []int
		colors  []asciigraph.AnsiColor
		legends []string
	)
	for b := range tracks {
		if len(tracks[b][0]) == 0 {
			continue
		}
		bodies = append(bodies, b)
		colors = append(colors, SeriesColors[b])
		legends = append(legends, nbody.Names[b])
	}
	if len(bodies) == 0 {
		return nil
	}

	first, last := snaps[0].Time, snaps[len(snaps)-1].Time
	plots := make([]string, 0, len(axisNames))
	for axis, name := range axisNames {
		series := make([][]float64, len(bodies))
		for i, b := range bodies {
			series[i] = tracks[b][axis]
		}
		plots = append(plots, asciigraph.PlotMany(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Precision(2),
			asciigraph.SeriesColors(colors...),
			asciigraph.SeriesLegends(legends...),
			asciigraph.Caption(fmt.Sprintf("%s (AU) vs step %d..%d", name, first, last)),
		))
	}
	return plots
}

// Chart plots a single series, such as the relative energy drift.
func Chart(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}
