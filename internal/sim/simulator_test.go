package sim_test

import (
	"context"
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/metrics"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/sim"
)

type countingMetric struct {
	steps  []int
	resets int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(step int, s *nbody.System) {
	c.steps = append(c.steps, step)
}
func (c *countingMetric) Value() float64 { return float64(len(c.steps)) }
func (c *countingMetric) Reset() {
	c.steps = nil
	c.resets++
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

var _ = Describe("Simulator", func() {
	var (
		simulator *sim.Simulator
		cfg       sim.Config
	)

	BeforeEach(func() {
		simulator = sim.New(compute.NewScalarBackend(), sim.WithLogger(quietLogger()))
		cfg = sim.DefaultConfig()
	})

	Describe("Run", func() {
		It("reports the reference energies for 1000 steps", func() {
			cfg.Steps = 1000
			result, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Steps).To(Equal(1000))
			Expect(result.InitialEnergy).To(BeNumerically("~", -0.169075164, 1e-9))
			Expect(result.FinalEnergy).To(BeNumerically("~", -0.169087605, 1e-9))
			Expect(result.Backend).To(Equal("scalar"))
		})

		It("normalizes momentum before stepping", func() {
			cfg.Steps = 0
			result, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())

			p := nbody.Momentum(&result.Final)
			for _, c := range p {
				Expect(c).To(BeNumerically("~", 0, 1e-15))
			}
			Expect(result.FinalEnergy).To(Equal(result.InitialEnergy))
		})

		It("is deterministic", func() {
			cfg.Steps = 300
			a, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Final).To(Equal(b.Final))
			Expect(a.FinalEnergy).To(Equal(b.FinalEnergy))
		})

		It("matches the parallel backend exactly", func() {
			cfg.Steps = 500
			a, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())

			par := sim.New(compute.NewParallelBackend(4), sim.WithLogger(quietLogger()))
			b, err := par.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Final).To(Equal(a.Final))
		})

		It("does not modify the caller's state", func() {
			x0 := nbody.InitialState()
			before := x0
			cfg.Steps = 10
			_, err := simulator.Run(context.Background(), x0, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(x0).To(Equal(before))
		})

		It("rejects negative step counts", func() {
			cfg.Steps = -1
			_, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(errors.Is(err, sim.ErrInvalidSteps)).To(BeTrue())
		})

		It("stops on a canceled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			cfg.Steps = 100
			result, err := simulator.Run(ctx, nbody.InitialState(), cfg)
			Expect(errors.Is(err, sim.ErrCanceled)).To(BeTrue())

			var simErr *sim.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(0))
			Expect(result).NotTo(BeNil())
			Expect(result.Steps).To(Equal(0))
		})

		It("flags a non-finite final state", func() {
			x0 := nbody.InitialState()
			x0[1].Position = x0[2].Position
			cfg.Steps = 1
			_, err := simulator.Run(context.Background(), x0, cfg)
			Expect(errors.Is(err, sim.ErrInvalidState)).To(BeTrue())
		})
	})

	Describe("sampling", func() {
		It("runs metrics and observers at the configured stride", func() {
			metric := &countingMetric{}
			rec := sim.NewRecorder(4)
			simulator.AddMetric(metric)
			simulator.AddObserver(rec)

			cfg.Steps = 10
			cfg.SampleEvery = 3
			result, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(metric.steps).To(Equal([]int{0, 3, 6, 9}))
			Expect(metric.resets).To(Equal(1))
			Expect(result.Metrics).To(HaveKeyWithValue("count", 4.0))
			Expect(rec.Snapshots).To(HaveLen(4 * nbody.NumBodies))
		})

		It("measures energy drift from the normalized state", func() {
			for _, m := range metrics.Default() {
				simulator.AddMetric(m)
			}

			for _, every := range []int{1, 100} {
				cfg.Steps = 1
				cfg.SampleEvery = every
				result, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.EnergyDrift()).To(BeNumerically(">", 0))
				Expect(result.Metrics["energy_drift"]).To(BeNumerically(">=", result.EnergyDrift()))
			}
		})

		It("records every body for every step by default", func() {
			rec := sim.NewRecorder(5)
			simulator.AddObserver(rec)

			cfg.Steps = 5
			result, err := simulator.Run(context.Background(), nbody.InitialState(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Snapshots).To(HaveLen(5 * nbody.NumBodies))

			first := rec.Snapshots[0]
			Expect(first.Time).To(Equal(0))
			Expect(first.Planet).To(Equal(0))

			last := rec.Snapshots[len(rec.Snapshots)-1]
			Expect(last.Time).To(Equal(4))
			Expect(last.Planet).To(Equal(nbody.NumBodies - 1))
			Expect(last.X).To(Equal(result.Final[nbody.NumBodies-1].Position[0]))

			jupiter := rec.Body(1)
			Expect(jupiter).To(HaveLen(5))
			for i, sn := range jupiter {
				Expect(sn.Time).To(Equal(i))
			}
		})
	})

	Describe("SimulationError", func() {
		It("formats the step and unwraps", func() {
			err := &sim.SimulationError{Step: 42, Wrapped: sim.ErrInvalidState}
			Expect(err.Error()).To(Equal("step 42: sim: invalid state (NaN or Inf detected)"))
			Expect(errors.Unwrap(err)).To(Equal(sim.ErrInvalidState))
		})
	})

	Describe("Result", func() {
		It("computes relative energy drift", func() {
			r := &sim.Result{InitialEnergy: -2, FinalEnergy: -1.5}
			Expect(r.EnergyDrift()).To(BeNumerically("~", 0.25, 1e-15))

			Expect((&sim.Result{}).EnergyDrift()).To(Equal(0.0))
		})
	})
})
