// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra layer used by the circuit
// solver: a row-major Dense matrix with bounds-checked accessors, the small set
// of kernels the mesh and nodal systems need (Add, Sub, Mul, Neg, Transpose,
// Abs, SwapRows, Col), and EquationSystem, a solver that picks between an
// iterative and a direct method.
//
// What:
//
//   - Dense: r×c float64 matrix, flat row-major storage, At/Set return errors
//     instead of panicking. NewVector builds an r×1 column vector.
//   - Kernels: every kernel allocates a fresh result and never mutates its
//     operands. Shape violations return ErrDimensionMismatch.
//   - EquationSystem(A, B): requires A.Rows == B.Rows and B.Cols == 1.
//     Solution(tol, maxIter) evaluates the Sassenfeld criterion; when it holds
//     (and A is square) Gauss–Seidel runs in place on the stored solution,
//     otherwise Gauss–Jordan elimination with partial pivoting runs on private
//     copies of A and B.
//
// Numeric policy:
//
//   - Gauss–Seidel is best effort: reaching maxIter without meeting tol is not
//     an error. Report().Converged tells the caller what happened and
//     Residual() measures ‖A·x − B‖∞.
//   - Gauss–Jordan skips a column whose best pivot is below
//     pivotEpsilon·max|A| and leaves that unknown at zero. This keeps singular
//     but consistent systems (a graph Laplacian) solvable. WithStrictPivot turns
//     the skip into ErrSingular.
//
// Complexity:
//
//   - Mul: O(r·n·c). Gauss–Jordan: O(r·c·min(r,c)). Gauss–Seidel: O(maxIter·n²).
package matrix
