package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// MomentumDrift tracks the largest magnitude of total linear momentum seen.
// After normalization it should stay at rounding level.
type MomentumDrift struct {
	name string
	max  float64
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{
		name: "momentum_drift",
	}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(step int, s *nbody.System) {
	p := nbody.Momentum(s)
	m.max = math.Max(m.max, p.Norm())
}

func (m *MomentumDrift) Value() float64 {
	return m.max
}

func (m *MomentumDrift) Reset() {
	m.max = 0
}
