// Package analysis extracts dynamics from simulated orbits.
//
//   - [PowerSpectrum] and [DominantPeriod]: frequency content of a sampled
//     coordinate
//   - [OrbitalPeriods]: period of every planet from a recorded trajectory
//   - [LyapunovExponent]: divergence rate of two nearby systems
//
// Periods come from the heliocentric x coordinate, so a trajectory must
// cover at least a couple of orbits of a planet for its estimate to mean
// anything:
//
//	periods, err := analysis.OrbitalPeriods(snaps)
//	fmt.Printf("jupiter: %.2f years\n", periods[1])
package analysis
