// Package nbody implements the five-body solar system kernel.
//
// The package holds the body state and the three operations that act on it:
//
//   - [OffsetMomentum]: moves the frame so total momentum is zero
//   - [Energy]: total kinetic plus potential energy
//   - [Advance]: one fixed step of semi-implicit Euler integration
//
// A [System] is a fixed-size array of [Body] values. Copying a System copies
// the whole simulation state.
//
// # Example
//
//	s := nbody.InitialState()
//	nbody.OffsetMomentum(&s)
//	e0 := nbody.Energy(&s)
//	for i := 0; i < 1000; i++ {
//	    nbody.Advance(&s)
//	}
//	e1 := nbody.Energy(&s)
//
// # Floating point
//
// Summation order is fixed. Energies printed with nine decimals are stable
// across runs and match the published results for this dataset.
package nbody
