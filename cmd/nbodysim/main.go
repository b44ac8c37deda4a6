package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
)

var (
	dataDir  string
	logLevel string
	// run
	steps       int
	backendName string
	workers     int
	recordEvery int
	noRecord    bool
	outputFile  string
	metricsFile string
	configFile  string
	preset      string
	// plot / export
	plotWidth  int
	plotHeight int
	svgOutput  string
	svgSize    int
	// analyze
	spectrumBody  string
	lyapunovSteps int
	// bench
	benchSteps   int
	benchWorkers int
	showHistory  bool
	historyLimit int
	noSave       bool
	// live
	liveBackend   string
	stepsPerFrame int
	trailLength   int
	frameRate     int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("nbodysim failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nbodysim <steps> [output.csv]",
		Short: "sun and jovian planets gravity simulation",
		Long: `nbodysim advances the Sun, Jupiter, Saturn, Uranus and Neptune with a
symplectic Euler integrator (dt = 0.01 years).

Called with a step count it prints the total energy before and after the
run, and with a second argument it writes every position to a CSV file.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return runDriver(cmd.Context(), cmd.OutOrStdout(), args[0], output)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().StringVar(&backendName, "backend", compute.DefaultBackend, "compute backend")
	runCmd.Flags().IntVar(&workers, "workers", 0, "goroutines for the parallel backend (0 = all CPUs)")
	runCmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record positions every n steps")
	runCmd.Flags().BoolVar(&noRecord, "no-record", false, "do not record positions")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "also write the trajectory to this CSV file")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write run metrics in Prometheus text format")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot x, y and z against time for every body",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the orbits of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOutput, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&spectrumBody, "body", "jupiter", "body whose power spectrum is plotted")
	analyzeCmd.Flags().IntVar(&lyapunovSteps, "lyapunov", 0, "also estimate the Lyapunov exponent over this many steps")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time every compute backend",
		Args:  cobra.NoArgs,
		RunE:  benchBackends,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 1_000_000, "number of steps per backend")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "goroutines for the parallel backend (0 = all CPUs)")
	benchCmd.Flags().BoolVar(&showHistory, "history", false, "show stored benchmark history instead of running")
	benchCmd.Flags().IntVar(&historyLimit, "limit", 20, "rows of history to show")
	benchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store results in the history")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the orbits in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&liveBackend, "backend", compute.DefaultBackend, "compute backend")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 20, "steps advanced per frame")
	liveCmd.Flags().IntVar(&trailLength, "trail", 400, "trail length in steps")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportSVGCmd, analyzeCmd, benchCmd, liveCmd, presetsCmd)
	return rootCmd
}

// runDriver is the plain command line: two energies, optionally every
// position. The step count is checked before any file is created.
func runDriver(ctx context.Context, w io.Writer, stepsArg, output string) error {
	n, err := strconv.Atoi(stepsArg)
	if err != nil {
		return fmt.Errorf("invalid step count %q: %w", stepsArg, err)
	}
	if n < 0 {
		return fmt.Errorf("%w, got %d", sim.ErrInvalidSteps, n)
	}

	s := sim.New(compute.NewScalarBackend())

	var tw *storage.TrajectoryWriter
	if output != "" {
		tw, err = storage.CreateTrajectoryFile(output)
		if err != nil {
			return err
		}
		s.AddObserver(tw)
	}

	res, err := s.Run(ctx, nbody.InitialState(), sim.Config{Steps: n, SampleEvery: 1})
	if tw != nil {
		if cerr := tw.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%.9f\n", res.InitialEnergy)
	fmt.Fprintf(w, "%.9f\n", res.FinalEnergy)
	return nil
}

// openBackend honours --workers for the parallel backend.
func openBackend(name string, n int) (compute.Backend, error) {
	if name == "parallel" && n > 0 {
		return compute.NewParallelBackend(n), nil
	}
	return compute.Get(name)
}
