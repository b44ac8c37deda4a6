package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// BodyColors are the stroke colours of the five bodies, star first.
var BodyColors = [nbody.NumBodies]string{"yellow", "orange", "blue", "green", "purple"}

// OrbitsToSVG draws the x-y projection of each recorded body as a polyline,
// with a dot at its last position. Both axes share one scale so orbits stay
// round. Returns "" when there is nothing to draw.
func OrbitsToSVG(snaps []nbody.Snapshot, size int) string {
	var tracks [nbody.NumBodies][]nbody.Snapshot
	for _, sn := range snaps {
		if sn.Planet >= 0 && sn.Planet < nbody.NumBodies {
			tracks[sn.Planet] = append(tracks[sn.Planet], sn)
		}
	}

	if len(snaps) == 0 || size <= 0 {
		return ""
	}

	extent := 0.0
	for _, sn := range snaps {
		extent = math.Max(extent, math.Max(math.Abs(sn.X), math.Abs(sn.Y)))
	}
	if extent == 0 {
		extent = 1
	}
	// 5% margin on each side
	scale := float64(size) / (2.1 * extent)
	half := float64(size) / 2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	for b, track := range tracks {
		if len(track) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6" d="`, BodyColors[b]))
		for i, sn := range track {
			x, y := half+sn.X*scale, half-sn.Y*scale
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		last := track[len(track)-1]
		r := 3.0
		if b == nbody.Star {
			r = 6
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.0f" fill="%s"><title>%s</title></circle>
`, half+last.X*scale, half-last.Y*scale, r, BodyColors[b], nbody.Names[b]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
