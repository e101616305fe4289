package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for solves and cycle detections.
const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeSolved   = "solved"
	OutcomeNoAnswer = "no_answer"
	OutcomeError    = "error"
)

// Collector owns the solver's Prometheus collectors on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	Registry      *prometheus.Registry
	Cycles        *prometheus.CounterVec
	CycleSteps    prometheus.Histogram
	Solves        *prometheus.CounterVec
	SolveDuration prometheus.Histogram
}

// New creates a Collector and registers its metrics.
func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockstep_cycles_total",
				Help: "Cycle detections per start node, by outcome",
			},
			[]string{"outcome"},
		),
		CycleSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lockstep_cycle_steps",
			Help:    "Steps simulated before a (state, cursor) pair repeated",
			Buckets: prometheus.ExponentialBuckets(8, 4, 10),
		}),
		Solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockstep_solves_total",
				Help: "Solve requests, by outcome",
			},
			[]string{"outcome"},
		),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "lockstep_solve_duration_seconds",
			Help: "Duration of solve requests",
		}),
	}
	c.Registry.MustRegister(c.Cycles, c.CycleSteps, c.Solves, c.SolveDuration)
	return c
}

// ObserveCycle records one finished cycle detection. steps is stem plus
// loop length and is ignored for cached results.
func (c *Collector) ObserveCycle(outcome string, steps uint64) {
	if c == nil {
		return
	}
	c.Cycles.WithLabelValues(outcome).Inc()
	if outcome == OutcomeComputed {
		c.CycleSteps.Observe(float64(steps))
	}
}

// ObserveSolve records one finished solve.
func (c *Collector) ObserveSolve(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.Solves.WithLabelValues(outcome).Inc()
	c.SolveDuration.Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}
