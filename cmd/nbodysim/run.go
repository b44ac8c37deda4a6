package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
	"github.com/san-kum/nbodysim/internal/viz"
)

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("record-every") {
		cfg.Output.Record = true
		cfg.Output.RecordEvery = recordEvery
	}
	if noRecord {
		cfg.Output.Record = false
	}
	if flags.Changed("output") {
		cfg.Output.Trajectory = outputFile
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	backend, err := openBackend(cfg.Backend, workers)
	if err != nil {
		return err
	}
	defer backend.Close()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.NewRunID()
	if err != nil {
		return err
	}
	log := logrus.WithField("run", runID)

	s := sim.New(backend, sim.WithLogger(log))
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	var writers []*storage.TrajectoryWriter
	if cfg.Output.Record {
		tw, err := st.CreateTrajectory(runID)
		if err != nil {
			return err
		}
		writers = append(writers, tw)
	}
	if cfg.Output.Trajectory != "" {
		tw, err := storage.CreateTrajectoryFile(cfg.Output.Trajectory)
		if err != nil {
			return err
		}
		writers = append(writers, tw)
	}
	for _, tw := range writers {
		s.AddObserver(tw)
	}

	simCfg := cfg.SimConfig()
	log.WithFields(logrus.Fields{
		"steps":   simCfg.Steps,
		"backend": backend.Name(),
		"record":  cfg.Output.Record,
	}).Info("running simulation")

	result, runErr := s.Run(cmd.Context(), nbody.InitialState(), simCfg)
	for _, tw := range writers {
		if err := tw.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if result == nil {
		return runErr
	}
	if runErr != nil && !errors.Is(runErr, sim.ErrCanceled) {
		return runErr
	}

	if _, err := st.Save(runID, result, simCfg.SampleEvery, cfg.Output.Record); err != nil {
		return err
	}
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, result); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.WithField("path", cfg.Metrics.Textfile).Debug("wrote metrics textfile")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render("run "+runID))
	fmt.Fprintf(out, "completed %d steps in %v\n", result.Steps, result.Elapsed)
	fmt.Fprintf(out, "initial energy: %.9f\n", result.InitialEnergy)
	fmt.Fprintf(out, "final energy:   %.9f\n", result.FinalEnergy)
	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range metrics.Default() {
		fmt.Fprintf(out, "  %s: %.6e\n", m.Name(), result.Metrics[m.Name()])
	}

	// a canceled run is kept but still reported as a failure
	return runErr
}
