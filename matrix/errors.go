// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Algorithms return these sentinels (optionally wrapped with an operation tag)
// and tests check them via errors.Is. No exported function panics on
// user-triggered conditions.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes: Add/Sub of
	// different shapes, Mul with a.Cols != b.Rows, or an EquationSystem whose
	// right-hand side is not a column vector with A.Rows rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense was passed where a matrix is required.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned by Gauss–Jordan under strict pivoting when a
	// pivot column has no usable entry.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInvalidParameter indicates a negative or non-finite tolerance, or a
	// negative iteration cap, passed to EquationSystem.Solution.
	ErrInvalidParameter = errors.New("matrix: invalid solver parameter")

	// ErrRaggedRows indicates that a row-slice literal had rows of different length.
	ErrRaggedRows = errors.New("matrix: ragged rows")
)

