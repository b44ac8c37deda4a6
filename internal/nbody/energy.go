package nbody

import "math"

func sqr(x float64) float64 { return x * x }

// Energy returns the total kinetic plus gravitational potential energy.
// Each body's kinetic term is followed by the potential of its pairs with
// higher-indexed bodies.
func Energy(s *System) float64 {
	e := 0.0
	for i := range s {
		b := &s[i]
		e += 0.5 * b.Mass * (sqr(b.Velocity[0]) + sqr(b.Velocity[1]) + sqr(b.Velocity[2]))

		for j := i + 1; j < NumBodies; j++ {
			b2 := &s[j]
			e -= b.Mass * b2.Mass / math.Sqrt(
				sqr(b.Position[0]-b2.Position[0])+
					sqr(b.Position[1]-b2.Position[1])+
					sqr(b.Position[2]-b2.Position[2]),
			)
		}
	}
	return e
}

// KineticEnergy returns Σ ½ m |v|².
func KineticEnergy(s *System) float64 {
	e := 0.0
	for i := range s {
		b := &s[i]
		e += 0.5 * b.Mass * (sqr(b.Velocity[0]) + sqr(b.Velocity[1]) + sqr(b.Velocity[2]))
	}
	return e
}
