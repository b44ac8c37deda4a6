package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
)

func TestAxisPlots(t *testing.T) {
	s := nbody.InitialState()
	rec := sim.NewRecorder(20)
	for step := 0; step < 20; step++ {
		nbody.Advance(&s)
		rec.OnStep(step, &s)
	}

	plots := AxisPlots(rec.Snapshots, 40, 6)
	if len(plots) != 3 {
		t.Fatalf("expected 3 plots, got %d", len(plots))
	}
	for i, axis := range []string{"x", "y", "z"} {
		if !strings.Contains(plots[i], axis+" (AU) vs step 0..19") {
			t.Errorf("plot %d missing caption:\n%s", i, plots[i])
		}
	}
}

func TestAxisPlots_Empty(t *testing.T) {
	if plots := AxisPlots(nil, 40, 6); plots != nil {
		t.Errorf("expected nil, got %d plots", len(plots))
	}
}

func TestChart(t *testing.T) {
	if Chart([]float64{1}, 10, 3, "e") != "" {
		t.Error("expected no chart for a single value")
	}
	if chart := Chart([]float64{0, 1e-6, 2e-6}, 10, 3, "drift"); !strings.Contains(chart, "drift") {
		t.Errorf("missing caption:\n%s", chart)
	}
}
