package nbody

import "math"

// pairIndex lists the unordered pairs (i, j), i < j, in ascending order.
var pairIndex = func() [Interactions][2]int {
	var t [Interactions][2]int
	k := 0
	for i := 0; i < NumBodies-1; i++ {
		for j := i + 1; j < NumBodies; j++ {
			t[k] = [2]int{i, j}
			k++
		}
	}
	return t
}()

// Pair returns the body indices of interaction k.
func Pair(k int) (i, j int) {
	return pairIndex[k][0], pairIndex[k][1]
}

// Pairs is the per-step working set of Advance. It depends on positions
// only and is rebuilt on every step.
type Pairs struct {
	Delta [Interactions]Vec3
	Mag   [Interactions]float64
}

// Displacement computes p_i - p_j for pair k.
func (p *Pairs) Displacement(s *System, k int) {
	i, j := Pair(k)
	for m := 0; m < 3; m++ {
		p.Delta[k][m] = s[i].Position[m] - s[j].Position[m]
	}
}

// Magnitude computes dt/d³ for pair k. Displacement must run first.
func (p *Pairs) Magnitude(k int) {
	d := &p.Delta[k]
	d2 := sqr(d[2]) + sqr(d[1]) + sqr(d[0])
	p.Mag[k] = TimeStep / (d2 * math.Sqrt(d2))
}

// Kick applies the equal and opposite velocity change of pair k.
func (p *Pairs) Kick(s *System, k int) {
	i, j := Pair(k)
	iMassMag := s[i].Mass * p.Mag[k]
	jMassMag := s[j].Mass * p.Mag[k]
	d := &p.Delta[k]
	for m := 0; m < 3; m++ {
		s[i].Velocity[m] -= d[m] * jMassMag
		s[j].Velocity[m] += d[m] * iMassMag
	}
}

// KickBody applies every pair contribution to body b alone, in ascending
// pair order. Running it for all bodies gives the same velocities as
// running Kick for all pairs, and writes only s[b].
func (p *Pairs) KickBody(s *System, b int) {
	v := &s[b].Velocity
	for k := 0; k < Interactions; k++ {
		i, j := Pair(k)
		d := &p.Delta[k]
		switch b {
		case i:
			jMassMag := s[j].Mass * p.Mag[k]
			for m := 0; m < 3; m++ {
				v[m] -= d[m] * jMassMag
			}
		case j:
			iMassMag := s[i].Mass * p.Mag[k]
			for m := 0; m < 3; m++ {
				v[m] += d[m] * iMassMag
			}
		}
	}
}

// Drift moves a body along its current velocity for one step.
func Drift(b *Body) {
	for m := 0; m < 3; m++ {
		b.Position[m] += TimeStep * b.Velocity[m]
	}
}

// Advance moves the system forward by one TimeStep. All velocities are
// updated before any position.
func Advance(s *System) {
	var p Pairs

	for k := 0; k < Interactions; k++ {
		p.Displacement(s, k)
	}
	for k := 0; k < Interactions; k++ {
		p.Magnitude(k)
	}
	for k := 0; k < Interactions; k++ {
		p.Kick(s, k)
	}
	for i := range s {
		Drift(&s[i])
	}
}
