package analysis

import (
	"math"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// Stepper advances a system by one time step. compute.Backend satisfies it.
type Stepper interface {
	Advance(s *nbody.System)
}

// separation is the phase-space distance between two systems.
func separation(a, b *nbody.System) float64 {
	sum := 0.0
	for i := range a {
		dp := a[i].Position.Sub(b[i].Position)
		dv := a[i].Velocity.Sub(b[i].Velocity)
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}

// rescale moves b towards a so that their separation becomes d0.
func rescale(a, b *nbody.System, sep, d0 float64) {
	f := d0 / sep
	for i := range a {
		b[i].Position = a[i].Position.Add(b[i].Position.Sub(a[i].Position).Scale(f))
		b[i].Velocity = a[i].Velocity.Add(b[i].Velocity.Sub(a[i].Velocity).Scale(f))
	}
}

// LyapunovExponent estimates the largest Lyapunov exponent, per year, of x0
// by following a copy whose body perturbed is moved d0 AU along x. Every
// renorm steps the separation is logged and the copy pulled back to d0.
// Both systems are momentum-normalized first.
func LyapunovExponent(st Stepper, x0 nbody.System, perturbed, steps, renorm int, d0 float64) float64 {
	if steps <= 0 || d0 <= 0 || perturbed < 0 || perturbed >= nbody.NumBodies {
		return 0
	}
	if renorm < 1 {
		renorm = 1
	}

	a := x0
	nbody.OffsetMomentum(&a)
	b := x0
	b[perturbed].Position[0] += d0
	nbody.OffsetMomentum(&b)
	d0 = separation(&a, &b)

	sumLog := 0.0
	elapsed := 0
	for step := 1; step <= steps; step++ {
		st.Advance(&a)
		st.Advance(&b)
		if step%renorm != 0 && step != steps {
			continue
		}
		sep := separation(&a, &b)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		elapsed = step
		rescale(&a, &b, sep, d0)
	}

	if elapsed == 0 {
		return 0
	}
	return sumLog / (float64(elapsed) * nbody.TimeStep)
}
