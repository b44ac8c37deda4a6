package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/nbodysim/internal/sim"
)

const namespace = "nbody"

// Registry builds a registry describing a finished run. Metric values from
// the run are exported under nbody_run_metric{metric="..."}.
func Registry(res *sim.Result) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"backend": res.Backend}

	initial := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "energy_initial",
		Help:        "Total energy after momentum normalization.",
		ConstLabels: labels,
	})
	final := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "energy_final",
		Help:        "Total energy after the last step.",
		ConstLabels: labels,
	})
	drift := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "energy_drift_ratio",
		Help:        "Relative difference between final and initial energy.",
		ConstLabels: labels,
	})
	steps := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "steps_total",
		Help:        "Integrator steps taken.",
		ConstLabels: labels,
	})
	elapsed := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "run_duration_seconds",
		Help:        "Wall time spent in the integration loop.",
		ConstLabels: labels,
	})
	runMetrics := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "run_metric",
		Help:        "Metrics sampled during the run.",
		ConstLabels: labels,
	}, []string{"metric"})

	reg.MustRegister(initial, final, drift, steps, elapsed, runMetrics)

	initial.Set(res.InitialEnergy)
	final.Set(res.FinalEnergy)
	drift.Set(res.EnergyDrift())
	steps.Add(float64(res.Steps))
	elapsed.Set(res.Elapsed.Seconds())
	for name, v := range res.Metrics {
		runMetrics.WithLabelValues(name).Set(v)
	}

	return reg
}

// WriteTextfile writes the run metrics in the Prometheus text format, for
// pickup by a node exporter textfile collector.
func WriteTextfile(path string, res *sim.Result) error {
	return prometheus.WriteToTextfile(path, Registry(res))
}
