package nbody

// OffsetMomentum gives the star the velocity that cancels the momentum of
// the planets, so the system's center of mass is at rest. Calling it again
// without an intervening Advance leaves the star unchanged.
func OffsetMomentum(s *System) {
	star := &s[Star]
	star.Velocity = Vec3{}
	for _, planet := range s[Star+1:] {
		for m := 0; m < 3; m++ {
			star.Velocity[m] -= planet.Velocity[m] * planet.Mass / star.Mass
		}
	}
}

// Momentum returns the total linear momentum Σ m·v.
func Momentum(s *System) Vec3 {
	var p Vec3
	for i := range s {
		for m := 0; m < 3; m++ {
			p[m] += s[i].Velocity[m] * s[i].Mass
		}
	}
	return p
}
