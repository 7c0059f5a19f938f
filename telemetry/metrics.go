// SPDX-License-Identifier: MIT

// Package telemetry exports circuit solve statistics as Prometheus metrics.
package telemetry

import (
	"github.com/katalvlaran/dcmesh/circuit"
	"github.com/katalvlaran/dcmesh/matrix"
	"github.com/prometheus/client_golang/prometheus"
)

// Phase label values.
const (
	PhaseMesh  = "mesh"
	PhaseNodal = "nodal"
)

// Collector implements circuit.Observer on top of Prometheus metrics.
type Collector struct {
	// SolvesTotal counts linear solves per phase and method
	SolvesTotal *prometheus.CounterVec

	// SolveFailures counts Solve calls that returned an error
	SolveFailures prometheus.Counter

	// GaussSeidelIterations tracks sweeps per Gauss–Seidel solve
	GaussSeidelIterations *prometheus.HistogramVec

	// SolveDuration tracks wall time of a whole Solve
	SolveDuration prometheus.Histogram

	// CircuitEdges and CircuitChords describe the last solved circuit
	CircuitEdges  prometheus.Gauge
	CircuitChords prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg, or with the
// default registerer when reg is nil. It panics if a metric is already
// registered.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		SolvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dcmesh_solves_total",
				Help: "Total number of linear solves per phase and method",
			},
			[]string{"phase", "method"},
		),
		SolveFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dcmesh_solve_failures_total",
				Help: "Total number of circuit solves that failed",
			},
		),
		GaussSeidelIterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dcmesh_gauss_seidel_iterations",
				Help:    "Gauss-Seidel sweeps per solve",
				Buckets: prometheus.ExponentialBuckets(1, 2, 11),
			},
			[]string{"phase"},
		),
		SolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dcmesh_solve_duration_seconds",
				Help:    "Wall time of a circuit solve",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
		),
		CircuitEdges: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dcmesh_circuit_edges",
				Help: "Components in the last solved circuit",
			},
		),
		CircuitChords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dcmesh_circuit_chords",
				Help: "Fundamental loops in the last solved circuit",
			},
		),
	}
	reg.MustRegister(
		c.SolvesTotal,
		c.SolveFailures,
		c.GaussSeidelIterations,
		c.SolveDuration,
		c.CircuitEdges,
		c.CircuitChords,
	)

	return c
}

// ObserveSolve records one Solve call.
func (c *Collector) ObserveSolve(s circuit.SolveStats) {
	c.SolveDuration.Observe(s.Duration.Seconds())
	if s.Err != nil {
		c.SolveFailures.Inc()
	}
	c.observePhase(PhaseMesh, s.Mesh)
	c.observePhase(PhaseNodal, s.Nodal)
	c.CircuitEdges.Set(float64(s.Edges))
	c.CircuitChords.Set(float64(s.Chords))
}

func (c *Collector) observePhase(phase string, rep matrix.Report) {
	if rep.Method == matrix.MethodNone {
		return
	}
	c.SolvesTotal.WithLabelValues(phase, rep.Method.String()).Inc()
	if rep.Method == matrix.MethodGaussSeidel {
		c.GaussSeidelIterations.WithLabelValues(phase).Observe(float64(rep.Iterations))
	}
}

var _ circuit.Observer = (*Collector)(nil)
