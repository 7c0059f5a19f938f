// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the linear-system solver.
// This file defines:
//   - SolveOption / SolveOptions (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherSolveOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultTolerance is the Gauss–Seidel stopping threshold on max |Δx|.
	DefaultTolerance = 5e-8

	// DefaultMaxIterations bounds the Gauss–Seidel sweep count.
	DefaultMaxIterations = 1000

	// DefaultPivotEpsilon is the relative pivot threshold for Gauss–Jordan:
	// a column whose best pivot is below eps·max|A| is treated as free.
	DefaultPivotEpsilon = 1e-12

	// DefaultStrictPivot turns a skipped (free) column into ErrSingular when true.
	DefaultStrictPivot = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPivotEpsilonInvalid = "matrix: WithPivotEpsilon: eps must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// SolveOption mutates internal solver options. Safe to apply repeatedly.
type SolveOption func(*SolveOptions)

// SolveOptions stores the effective configuration after applying SolveOption setters.
type SolveOptions struct {
	pivotEps    float64 // >= 0; DefaultPivotEpsilon
	strictPivot bool    // DefaultStrictPivot
}

// DefaultSolveOptions returns the documented defaults.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		pivotEps:    DefaultPivotEpsilon,
		strictPivot: DefaultStrictPivot,
	}
}

// WithPivotEpsilon sets the relative pivot threshold used by Gauss–Jordan.
// Panics on NaN, Inf or negative eps.
func WithPivotEpsilon(eps float64) SolveOption {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicPivotEpsilonInvalid)
	}

	return func(o *SolveOptions) { o.pivotEps = eps }
}

// WithStrictPivot makes Gauss–Jordan fail with ErrSingular instead of
// assigning 0 to a free variable.
func WithStrictPivot() SolveOption {
	return func(o *SolveOptions) { o.strictPivot = true }
}

// gatherSolveOptions folds opts over the defaults, skipping nil entries.
func gatherSolveOptions(opts ...SolveOption) SolveOptions {
	o := DefaultSolveOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
