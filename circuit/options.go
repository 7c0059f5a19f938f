// SPDX-License-Identifier: MIT

package circuit

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/dcmesh/matrix"
)

// Solver defaults, shared with package matrix.
const (
	DefaultTolerance     = matrix.DefaultTolerance
	DefaultMaxIterations = matrix.DefaultMaxIterations
	DefaultPivotEpsilon  = matrix.DefaultPivotEpsilon
)

const (
	panicToleranceInvalid = "circuit: WithTolerance: tol must be finite, non-negative"
	panicMaxIterInvalid   = "circuit: WithMaxIterations: n must be non-negative"
	panicPivotEpsInvalid  = "circuit: WithPivotEpsilon: eps must be finite, non-negative"
)

// SolveStats describes one Solve call. Mesh is the zero Report when the
// network has no chords.
type SolveStats struct {
	Vertices int
	Edges    int
	Chords   int
	Mesh     matrix.Report
	Nodal    matrix.Report
	Duration time.Duration
	Err      error
}

// Observer receives a SolveStats after every Solve, successful or not.
type Observer interface {
	ObserveSolve(SolveStats)
}

// Option configures a Circuit. Use with New(opts...).
type Option func(*Options)

// Options holds the solver parameters and the ambient hooks of a Circuit.
type Options struct {
	// Tolerance is the Gauss–Seidel stop threshold on max |Δx|.
	Tolerance float64

	// MaxIterations caps Gauss–Seidel sweeps per phase.
	MaxIterations int

	// PivotEpsilon is the relative Gauss–Jordan pivot threshold.
	PivotEpsilon float64

	// StrictPivot makes a rank-deficient mesh system fail with matrix.ErrSingular.
	StrictPivot bool

	// Logger receives structured records; defaults to a discard logger.
	Logger *slog.Logger

	// Observer, if non-nil, is told about every Solve.
	Observer Observer
}

// DefaultOptions returns Options with:
//   - Tolerance 5e-8, MaxIterations 1000
//   - PivotEpsilon 1e-12, lenient pivoting
//   - a discard logger and no observer
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		PivotEpsilon:  DefaultPivotEpsilon,
		StrictPivot:   false,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer:      nil,
	}
}

// WithTolerance sets the Gauss–Seidel tolerance. Panics on NaN, Inf or tol < 0.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIterations sets the Gauss–Seidel sweep cap. Panics on n < 0.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithPivotEpsilon sets the relative Gauss–Jordan pivot threshold.
// Panics on NaN, Inf or eps < 0.
func WithPivotEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicPivotEpsInvalid)
	}

	return func(o *Options) { o.PivotEpsilon = eps }
}

// WithStrictPivot enables strict pivoting for the mesh phase.
func WithStrictPivot() Option {
	return func(o *Options) { o.StrictPivot = true }
}

// WithLogger installs a structured logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs a solve observer, e.g. a telemetry collector.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// meshOptions returns the matrix options of the mesh phase.
func (o Options) meshOptions() []matrix.SolveOption {
	opts := []matrix.SolveOption{matrix.WithPivotEpsilon(o.PivotEpsilon)}
	if o.StrictPivot {
		opts = append(opts, matrix.WithStrictPivot())
	}

	return opts
}

// nodalOptions returns the matrix options of the nodal phase.
func (o Options) nodalOptions() []matrix.SolveOption {
	return []matrix.SolveOption{matrix.WithPivotEpsilon(o.PivotEpsilon)}
}
