package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

func benchBackends(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	h, err := storage.OpenHistory(filepath.Join(dataDir, storage.HistoryFile))
	if err != nil {
		return err
	}
	defer h.Close()

	if showHistory {
		return printHistory(cmd, h)
	}

	best, err := h.Best(ctx, benchSteps)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d steps\n\n", benchSteps)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tTIME\tSTEPS/SEC\tFINAL ENERGY\tVS BEST")

	for _, name := range compute.Names() {
		backend, err := openBackend(name, benchWorkers)
		if err != nil {
			return err
		}
		result, err := sim.New(backend).Run(ctx, nbody.InitialState(), sim.Config{Steps: benchSteps})
		backend.Close()
		if err != nil {
			return err
		}

		rec := storage.BenchRecord{
			Backend:     name,
			Steps:       result.Steps,
			Elapsed:     result.Elapsed,
			FinalEnergy: result.FinalEnergy,
		}
		vsBest := "-"
		if prev, ok := best[name]; ok && prev.Elapsed > 0 {
			vsBest = fmt.Sprintf("%.2fx", float64(rec.Elapsed)/float64(prev.Elapsed))
		}
		fmt.Fprintf(w, "%s\t%v\t%.0f\t%.9f\t%s\n", name, rec.Elapsed, rec.StepsPerSec(), rec.FinalEnergy, vsBest)

		if !noSave {
			if _, err := h.Record(ctx, rec); err != nil {
				return err
			}
		}
		logrus.WithFields(logrus.Fields{"backend": name, "elapsed": rec.Elapsed}).Debug("benchmark finished")
	}
	return w.Flush()
}

func printHistory(cmd *cobra.Command, h *storage.History) error {
	recs, err := h.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "no benchmark history")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBACKEND\tSTEPS\tELAPSED\tSTEPS/SEC")
	trend := make([]float64, 0, len(recs))
	for _, r := range recs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%v\t%.0f\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Backend, r.Steps, r.Elapsed, r.StepsPerSec())
		trend = append(trend, r.StepsPerSec())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// oldest on the left
	for i, j := 0, len(trend)-1; i < j; i, j = i+1, j-1 {
		trend[i], trend[j] = trend[j], trend[i]
	}
	fmt.Fprintf(out, "\nsteps/sec trend: %s\n", viz.Sparkline(trend, len(trend)))
	return nil
}
