package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/export"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tBACKEND\tRECORD\tFINAL ENERGY\tELAPSED")
	for _, run := range runs {
		record := "-"
		if run.Recorded {
			record = fmt.Sprintf("every %d", run.RecordEvery)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%.9f\t%.3fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Backend,
			record,
			run.FinalEnergy,
			run.ElapsedSec,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	plots := viz.AxisPlots(snaps, plotWidth, plotHeight)
	if plots == nil {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "steps: %d (recorded every %d)\n", meta.Steps, meta.RecordEvery)
	fmt.Fprintf(out, "samples: %d\n\n", len(snaps))
	for _, p := range plots {
		fmt.Fprintln(out, p)
		fmt.Fprintln(out)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	svg := export.OrbitsToSVG(snaps, svgSize)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	if svgOutput == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(svgOutput, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgOutput)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tBACKEND\tRECORD")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		record := "-"
		if p.Output.Record {
			record = fmt.Sprintf("every %d", p.Output.RecordEvery)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, p.Steps, p.Backend, record)
	}
	return w.Flush()
}
