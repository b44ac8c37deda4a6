package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/sirupsen/logrus"
)

type Simulator struct {
	backend   compute.Backend
	metrics   []Metric
	observers []Observer
	log       *logrus.Entry
}

type Option func(*Simulator)

// WithLogger sets the entry used for run diagnostics.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Simulator) { s.log = l }
}

func New(backend compute.Backend, opts ...Option) *Simulator {
	s := &Simulator{
		backend:   backend,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run normalizes the momentum of x0, measures its energy, advances it
// cfg.Steps times and measures the energy again. On cancellation the
// partial result is returned together with the error.
func (s *Simulator) Run(ctx context.Context, x0 nbody.System, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}
	check := cfg.CheckEvery
	if check < 1 {
		check = DefaultConfig().CheckEvery
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	sys := x0
	nbody.OffsetMomentum(&sys)
	for _, m := range s.metrics {
		if sd, ok := m.(Seeder); ok {
			sd.Seed(&sys)
		}
	}

	result := &Result{
		InitialEnergy: nbody.Energy(&sys),
		Backend:       s.backend.Name(),
		Metrics:       make(map[string]float64),
	}

	log := s.log.WithFields(logrus.Fields{
		"steps":   cfg.Steps,
		"backend": s.backend.Name(),
	})
	log.WithField("energy", result.InitialEnergy).Debug("starting run")

	start := time.Now()
	for step := 0; step < cfg.Steps; step++ {
		if step%check == 0 {
			select {
			case <-ctx.Done():
				s.finish(result, &sys, step, start)
				return result, &SimulationError{
					Step:    step,
					Wrapped: fmt.Errorf("%w: %v", ErrCanceled, ctx.Err()),
				}
			default:
			}
		}

		s.backend.Advance(&sys)

		if step%every == 0 {
			for _, m := range s.metrics {
				m.Observe(step, &sys)
			}
			for _, obs := range s.observers {
				obs.OnStep(step, &sys)
			}
		}
	}
	s.finish(result, &sys, cfg.Steps, start)

	if !sys.IsFinite() {
		return result, &SimulationError{Step: cfg.Steps, Wrapped: ErrInvalidState}
	}

	log.WithFields(logrus.Fields{
		"energy":  result.FinalEnergy,
		"elapsed": result.Elapsed,
	}).Debug("run finished")

	return result, nil
}

func (s *Simulator) finish(result *Result, sys *nbody.System, steps int, start time.Time) {
	result.Elapsed = time.Since(start)
	result.Steps = steps
	result.Final = *sys
	result.FinalEnergy = nbody.Energy(sys)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSteps, cfg.Steps)
	}
	return nil
}
