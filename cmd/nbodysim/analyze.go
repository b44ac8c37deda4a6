package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/analysis"
	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

func bodyIndex(name string) (int, error) {
	for i, n := range nbody.Names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown body %q (available: %v)", name, nbody.Names)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	body, err := bodyIndex(spectrumBody)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	periods, err := analysis.OrbitalPeriods(snaps)
	if err != nil {
		return err
	}
	coverage := analysis.Coverage(snaps, periods)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "steps: %d (recorded every %d)\n\n", meta.Steps, meta.RecordEvery)

	if body != nbody.Star {
		ps := analysis.PowerSpectrum(analysis.HeliocentricX(analysis.Tracks(snaps), body))
		// low frequencies hold the orbits
		if n := len(ps) / 4; n >= 2 {
			ps = ps[:n]
		}
		if chart := viz.Chart(ps, 80, 12, fmt.Sprintf("power spectrum of %s heliocentric x", nbody.Names[body])); chart != "" {
			fmt.Fprintln(out, chart)
			fmt.Fprintln(out)
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD\tORBITS COVERED")
	for b := nbody.Star + 1; b < nbody.NumBodies; b++ {
		note := ""
		if coverage[b] < 2 {
			note = " (rough)"
		}
		fmt.Fprintf(w, "%s\t%.2f yr\t%.1f%s\n", nbody.Names[b], periods[b], coverage[b], note)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if lyapunovSteps > 0 {
		backend := compute.NewScalarBackend()
		lambda := analysis.LyapunovExponent(backend, nbody.InitialState(), max(body, 1), lyapunovSteps, 100, 1e-9)
		fmt.Fprintf(out, "\nlyapunov exponent (%d steps): %.4e per year\n", lyapunovSteps, lambda)
	}
	return nil
}
