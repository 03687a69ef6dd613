// Package telemetry bundles Prometheus metrics for constellation runs: noise
// samples generated per process, travel-time solver iterations, and
// geometry samples and failures per arm.
package telemetry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lisasim/lisasim/sim"
)

// Collector bundles the run metrics and wires them into geometries.
type Collector struct {
	gatherer prometheus.Gatherer

	NoiseSamples     *prometheus.CounterVec
	SolverIterations prometheus.Histogram
	GeometrySamples  *prometheus.CounterVec
	Failures         *prometheus.CounterVec
}

// NewCollector registers the run metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	noiseSamples, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lisasim_noise_samples_generated_total",
		Help: "Discrete noise samples generated, labeled by noise process.",
	}, []string{"process"}), "lisasim_noise_samples_generated_total")
	if err != nil {
		return nil, err
	}

	iterations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lisasim_solver_iterations",
		Help:    "Bisection iterations per travel-time solve.",
		Buckets: prometheus.LinearBuckets(5, 5, 10),
	}), "lisasim_solver_iterations")
	if err != nil {
		return nil, err
	}

	samples, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lisasim_geometry_samples_total",
		Help: "Travel-time evaluations, labeled by signed arm.",
	}, []string{"arm"}), "lisasim_geometry_samples_total")
	if err != nil {
		return nil, err
	}

	failures, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lisasim_geometry_failures_total",
		Help: "Failed travel-time evaluations, labeled by signed arm and reason.",
	}, []string{"arm", "reason"}), "lisasim_geometry_failures_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		NoiseSamples:     noiseSamples,
		SolverIterations: iterations,
		GeometrySamples:  samples,
		Failures:         failures,
	}, nil
}

// Instrument attaches the collector to g: per-process noise counters when g
// is a NoisyGeometry, and the iteration histogram to every bisection solver
// found on g or the geometry it wraps.
func (c *Collector) Instrument(g sim.Geometry) {
	if c == nil {
		return
	}
	if n, ok := g.(*sim.NoisyGeometry); ok {
		for _, a := range sim.AllArms {
			n.SetCounter(a, c.NoiseSamples.WithLabelValues(sim.SubsystemForArm(a)))
		}
		g = n.Clean()
	}
	if su, ok := g.(sim.SolverUser); ok && su.TravelTimeSolver() != nil {
		su.TravelTimeSolver().Iterations = c.SolverIterations
	}
}

// ObserveSample counts one travel-time evaluation of arm a, and its failure
// reason when err is non-nil.
func (c *Collector) ObserveSample(a sim.Arm, err error) {
	if c == nil {
		return
	}
	arm := strconv.Itoa(int(a))
	c.GeometrySamples.WithLabelValues(arm).Inc()
	if err != nil {
		c.Failures.WithLabelValues(arm, FailureReason(err)).Inc()
	}
}

// FailureReason maps a travel-time error to a metric label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, sim.ErrNoConvergence):
		return "no_convergence"
	case errors.Is(err, sim.ErrNotBracketed):
		return "not_bracketed"
	default:
		return "other"
	}
}

// Totals gathers every counter and histogram-count family into a flat map
// keyed by metric name, summed over labels.
func (c *Collector) Totals() (map[string]float64, error) {
	families, err := c.gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}
	totals := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				totals[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				totals[mf.GetName()+"_count"] += float64(m.GetHistogram().GetSampleCount())
				totals[mf.GetName()+"_sum"] += m.GetHistogram().GetSampleSum()
			}
		}
	}
	return totals, nil
}

// SortedNames returns the keys of totals in lexical order.
func SortedNames(totals map[string]float64) []string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
