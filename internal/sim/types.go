package sim

import (
	"time"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// Observer is called after every sampled step with the index of the step
// just taken. It must not modify the system.
type Observer interface {
	OnStep(step int, s *nbody.System)
}

type Metric interface {
	Name() string
	Observe(step int, s *nbody.System)
	Value() float64
	Reset()
}

// Seeder is implemented by metrics that measure change relative to the
// normalized state. Seed is called once per run, before the first step.
type Seeder interface {
	Seed(s *nbody.System)
}

type Config struct {
	Steps int
	// SampleEvery is the stride at which observers and metrics run.
	// Values below 1 mean every step.
	SampleEvery int
	// CheckEvery is how often, in steps, the context is polled.
	CheckEvery int
}

func DefaultConfig() Config {
	return Config{
		Steps:       1000,
		SampleEvery: 1,
		CheckEvery:  4096,
	}
}

type Result struct {
	InitialEnergy float64
	FinalEnergy   float64
	Steps         int
	Elapsed       time.Duration
	Backend       string
	Final         nbody.System
	Metrics       map[string]float64
}

// EnergyDrift is the relative change between the initial and final energy.
func (r *Result) EnergyDrift() float64 {
	if r.InitialEnergy == 0 {
		return 0
	}
	d := (r.FinalEnergy - r.InitialEnergy) / r.InitialEnergy
	if d < 0 {
		return -d
	}
	return d
}
