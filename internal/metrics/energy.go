package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// EnergyDrift tracks the largest relative deviation of the total energy
// from the seeded value, or from the first observed value when unseeded.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
	}
}

func (e *EnergyDrift) Name() string { return e.name }

// Seed sets the baseline energy from the state before the first step.
func (e *EnergyDrift) Seed(s *nbody.System) {
	e.Reset()
	e.initialEnergy = nbody.Energy(s)
	e.currentEnergy = e.initialEnergy
	e.samples = 1
}

func (e *EnergyDrift) Observe(step int, s *nbody.System) {
	energy := nbody.Energy(s)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Current returns the most recently observed energy.
func (e *EnergyDrift) Current() float64 {
	return e.currentEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
