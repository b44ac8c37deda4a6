package metrics

import "github.com/san-kum/nbodysim/internal/sim"

// Default returns the metrics attached to every stored run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
	}
}
