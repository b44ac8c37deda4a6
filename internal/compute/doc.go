// Package compute provides interchangeable execution backends for the
// integrator step.
//
// Every backend produces the same state as [nbody.Advance], bit for bit:
//
//   - scalar: the reference loop
//   - parallel: fans the pair and body phases out over goroutines, with a
//     barrier between the velocity and position phases
//
// Backends are looked up by name:
//
//	b, err := compute.Get("parallel")
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//	b.Advance(&s)
package compute
