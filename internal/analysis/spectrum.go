package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/nbodysim/internal/nbody"
)

var (
	ErrTooShort  = errors.New("analysis: series too short")
	ErrIrregular = errors.New("analysis: samples are not evenly spaced")
)

// PowerSpectrum returns the magnitude of the first half of the discrete
// Fourier transform of data after removing its mean. Any length works.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant frequency
// in samples taken dt apart. The peak bin is refined by fitting a parabola
// through it and its neighbours.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, fmt.Errorf("%w: %d samples", ErrTooShort, len(samples))
	}
	ps := PowerSpectrum(samples)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return float64(len(samples)) * dt / bin, nil
}

// Tracks splits snapshots into per-body series ordered as recorded.
func Tracks(snaps []nbody.Snapshot) [nbody.NumBodies][]nbody.Snapshot {
	var tracks [nbody.NumBodies][]nbody.Snapshot
	for _, sn := range snaps {
		if sn.Planet >= 0 && sn.Planet < nbody.NumBodies {
			tracks[sn.Planet] = append(tracks[sn.Planet], sn)
		}
	}
	return tracks
}

// SampleInterval returns the time between samples of a track in years.
func SampleInterval(track []nbody.Snapshot) (float64, error) {
	if len(track) < 2 {
		return 0, fmt.Errorf("%w: %d samples", ErrTooShort, len(track))
	}
	stride := track[1].Time - track[0].Time
	if stride <= 0 {
		return 0, ErrIrregular
	}
	for i := 2; i < len(track); i++ {
		if track[i].Time-track[i-1].Time != stride {
			return 0, fmt.Errorf("%w: gap of %d steps at step %d", ErrIrregular, track[i].Time-track[i-1].Time, track[i].Time)
		}
	}
	return float64(stride) * nbody.TimeStep, nil
}

// HeliocentricX returns the x coordinate of planet relative to the star at
// every recorded step.
func HeliocentricX(tracks [nbody.NumBodies][]nbody.Snapshot, planet int) []float64 {
	star, body := tracks[nbody.Star], tracks[planet]
	n := min(len(star), len(body))
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = body[i].X - star[i].X
	}
	return xs
}

// OrbitalPeriods estimates the period in years of each planet. The star's
// entry is left at zero.
func OrbitalPeriods(snaps []nbody.Snapshot) ([nbody.NumBodies]float64, error) {
	var periods [nbody.NumBodies]float64

	tracks := Tracks(snaps)
	dt, err := SampleInterval(tracks[nbody.Star])
	if err != nil {
		return periods, err
	}

	for b := nbody.Star + 1; b < nbody.NumBodies; b++ {
		p, err := DominantPeriod(HeliocentricX(tracks, b), dt)
		if err != nil {
			return periods, fmt.Errorf("%s: %w", nbody.Names[b], err)
		}
		periods[b] = p
	}
	return periods, nil
}

// Coverage is the number of orbits of each planet a trajectory spans, given
// the estimated periods. Estimates for planets below two orbits are rough.
func Coverage(snaps []nbody.Snapshot, periods [nbody.NumBodies]float64) [nbody.NumBodies]float64 {
	var cov [nbody.NumBodies]float64
	if len(snaps) == 0 {
		return cov
	}
	span := float64(snaps[len(snaps)-1].Time-snaps[0].Time) * nbody.TimeStep
	for b, p := range periods {
		if p > 0 && !math.IsInf(p, 0) {
			cov[b] = span / p
		}
	}
	return cov
}
