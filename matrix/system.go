// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// EquationSystem is a linear system A·x = B with a persisted solution x.
// A is r×c, B is r×1 and x is c×1. The system holds private copies of A and B,
// so neither solver path can touch the caller's matrices.
type EquationSystem struct {
	a, b   *Dense
	x      *Dense
	report Report
}

// NewEquationSystem builds a system from A and a column vector B.
//
// Errors:
//   - ErrNilMatrix for nil operands.
//   - ErrDimensionMismatch when B.Rows != A.Rows or B.Cols != 1.
//
// Complexity: O(r*c) for the input copies.
func NewEquationSystem(a, b *Dense) (*EquationSystem, error) {
	if err := ValidateSystem(a, b); err != nil {
		return nil, matrixErrorf("NewEquationSystem", err)
	}
	x, err := NewVector(a.c)
	if err != nil {
		return nil, matrixErrorf("NewEquationSystem", err)
	}

	return &EquationSystem{a: a.Clone(), b: b.Clone(), x: x}, nil
}

// Sassenfeld evaluates the Sassenfeld criterion row by row:
//
//	β(i) = (Σ_{j<i} β(j)·|A[i][j]| + Σ_{j>i} |A[i][j]|) / |A[i][i]|
//
// and reports whether max β < 1, a sufficient condition for Gauss–Seidel
// convergence. Non-square systems and zero diagonals are never convergent;
// in the latter case the offending β is +Inf.
//
// Complexity: O(n²).
func (s *EquationSystem) Sassenfeld() ([]float64, bool) {
	a := s.a
	if a.r != a.c {
		return nil, false
	}
	n := a.r
	beta := make([]float64, n)
	var (
		i, j, base int
		sum, diag  float64
		maxBeta    float64
	)
	for i = 0; i < n; i++ {
		base = i * n
		sum = ZeroSum
		for j = 0; j < i; j++ {
			sum += beta[j] * math.Abs(a.data[base+j])
		}
		for j = i + 1; j < n; j++ {
			sum += math.Abs(a.data[base+j])
		}
		diag = math.Abs(a.data[base+i])
		if diag == 0 {
			beta[i] = math.Inf(1)
		} else {
			beta[i] = sum / diag
		}
		if beta[i] > maxBeta {
			maxBeta = beta[i]
		}
	}

	return beta, maxBeta < 1
}

// Solution solves the system and returns a copy of x.
//
// Implementation:
//   - Stage 1: Sassenfeld test. If it passes, Gauss–Seidel sweeps x in place
//     until max |Δx| < tol or maxIter sweeps ran.
//   - Stage 2: otherwise Gauss–Jordan with partial pivoting on copies of A|B.
//     A column whose best pivot is <= pivotEps·max|A| is left free and its
//     variable set to 0 (ErrSingular under WithStrictPivot).
//
// Behavior highlights:
//   - Gauss–Seidel non-convergence is not an error; Report().Converged is false.
//   - Repeated calls warm-start Gauss–Seidel from the previous x.
//
// Errors:
//   - ErrInvalidParameter for negative/non-finite tol or negative maxIter.
//   - ErrSingular under strict pivoting.
//
// Complexity:
//   - Gauss–Seidel O(maxIter·n²); Gauss–Jordan O(r·c·min(r,c)).
func (s *EquationSystem) Solution(tol float64, maxIter int, opts ...SolveOption) (*Dense, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return nil, matrixErrorf(opSolve, fmt.Errorf("tolerance %g: %w", tol, ErrInvalidParameter))
	}
	if maxIter < 0 {
		return nil, matrixErrorf(opSolve, fmt.Errorf("maxIterations %d: %w", maxIter, ErrInvalidParameter))
	}
	o := gatherSolveOptions(opts...)

	if _, ok := s.Sassenfeld(); ok {
		iters, converged := s.gaussSeidel(tol, maxIter)
		s.report = Report{Method: MethodGaussSeidel, Iterations: iters, Converged: converged}

		return s.x.Clone(), nil
	}

	x, skipped, err := gaussJordan(s.a, s.b, o)
	if err != nil {
		s.report = Report{Method: MethodGaussJordan, Skipped: skipped}
		return nil, matrixErrorf(opSolve, err)
	}
	copy(s.x.data, x)
	s.report = Report{Method: MethodGaussJordan, Converged: true, Skipped: skipped}

	return s.x.Clone(), nil
}

// X returns a copy of the stored solution (zeros before the first solve).
func (s *EquationSystem) X() *Dense { return s.x.Clone() }

// Report describes the most recent Solution call.
func (s *EquationSystem) Report() Report {
	r := s.report
	if r.Skipped != nil {
		r.Skipped = append([]int(nil), r.Skipped...)
	}

	return r
}

// Residual returns ‖A·x − B‖∞ for the stored solution.
func (s *EquationSystem) Residual() (float64, error) {
	r, err := Residual(s.a, s.x, s.b)
	if err != nil {
		return 0, err
	}

	return r.MaxAbs(), nil
}
