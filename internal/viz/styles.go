package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// Body colours, star first. The plot and terminal palettes name the same
// colours.
var (
	BodyColors = [nbody.NumBodies]lipgloss.Color{"#ffd700", "#ffa500", "#4169e1", "#32cd32", "#9370db"}

	SeriesColors = [nbody.NumBodies]asciigraph.AnsiColor{
		asciigraph.Yellow, asciigraph.Orange, asciigraph.Blue, asciigraph.Green, asciigraph.Purple,
	}
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	// Title is the CLI banner style.
	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
)

// BodyName renders a body name in its colour.
func BodyName(b int) string {
	return lipgloss.NewStyle().Foreground(BodyColors[b]).Render(nbody.Names[b])
}

// Sparkline renders values as a one-line bar chart sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	bars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	stride := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*stride < len(values); i++ {
		idx := int((values[i*stride] - lo) / rng * float64(len(bars)-1))
		b.WriteRune(bars[idx])
	}
	return b.String()
}
