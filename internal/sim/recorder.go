package sim

import "github.com/san-kum/nbodysim/internal/nbody"

// Recorder keeps every observed snapshot in memory, in step order.
type Recorder struct {
	Snapshots []nbody.Snapshot
}

// NewRecorder preallocates room for the given number of steps.
func NewRecorder(steps int) *Recorder {
	if steps < 0 {
		steps = 0
	}
	return &Recorder{Snapshots: make([]nbody.Snapshot, 0, steps*nbody.NumBodies)}
}

func (r *Recorder) OnStep(step int, s *nbody.System) {
	snaps := s.Snapshots(step)
	r.Snapshots = append(r.Snapshots, snaps[:]...)
}

// Body returns the recorded snapshots of a single body.
func (r *Recorder) Body(planet int) []nbody.Snapshot {
	out := make([]nbody.Snapshot, 0, len(r.Snapshots)/nbody.NumBodies)
	for _, sn := range r.Snapshots {
		if sn.Planet == planet {
			out = append(out, sn)
		}
	}
	return out
}
