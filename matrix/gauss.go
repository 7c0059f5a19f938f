// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// gaussSeidel sweeps s.x in place. Each xᵢ is recomputed from the already
// updated x₀..xᵢ₋₁ and the previous-sweep xᵢ₊₁..xₙ₋₁. Callers guarantee a
// square A with a non-zero diagonal (the Sassenfeld test passed).
//
// Returns the number of sweeps run and whether max |Δx| dropped below tol.
func (s *EquationSystem) gaussSeidel(tol float64, maxIter int) (int, bool) {
	a, b, x := s.a, s.b.data, s.x.data
	n := a.r
	var (
		it, i, j, base int
		sum, next      float64
		delta, maxDiff float64
	)
	for it = 1; it <= maxIter; it++ {
		maxDiff = 0
		for i = 0; i < n; i++ {
			base = i * n
			sum = b[i]
			for j = 0; j < n; j++ {
				if j != i {
					sum -= a.data[base+j] * x[j]
				}
			}
			next = sum / a.data[base+i]
			if delta = math.Abs(next - x[i]); delta > maxDiff {
				maxDiff = delta
			}
			x[i] = next
		}
		if maxDiff < tol {
			return it, true
		}
	}

	return maxIter, false
}

// gaussJordan reduces [A|B] to reduced row-echelon form on private copies.
//
// Implementation:
//   - Stage 1: for each column pick the row (at or below the next pivot row)
//     with the largest |A[r][col]|; swap it up.
//   - Stage 2: if that magnitude is <= pivotEps·max|A| the column is skipped;
//     otherwise normalise the pivot row and eliminate the column from every
//     other row, mirroring each step on B.
//   - Stage 3: x[col] = B[pivot row of col]; skipped columns stay 0.
//
// Complexity: O(r·c·min(r,c)) time, O(r·c) space.
func gaussJordan(a, b *Dense, o SolveOptions) ([]float64, []int, error) {
	m := a.Clone()
	rhs := b.Clone().data
	rows, cols := m.r, m.c
	threshold := o.pivotEps * m.MaxAbs()

	rowOf := make([]int, cols)
	var skipped []int
	var (
		col, r, j, best, pivot int
		bestAbs, v, p, f       float64
		prow, orow             []float64
	)
	for col = 0; col < cols; col++ {
		rowOf[col] = -1
		if pivot >= rows {
			skipped = append(skipped, col)
			continue
		}

		best, bestAbs = pivot, math.Abs(m.data[pivot*cols+col])
		for r = pivot + 1; r < rows; r++ {
			if v = math.Abs(m.data[r*cols+col]); v > bestAbs {
				best, bestAbs = r, v
			}
		}
		if bestAbs == 0 || bestAbs <= threshold {
			if o.strictPivot {
				return nil, skipped, fmt.Errorf("column %d: pivot %g: %w", col, bestAbs, ErrSingular)
			}
			skipped = append(skipped, col)
			continue
		}
		if best != pivot {
			m.swapRows(best, pivot)
			rhs[best], rhs[pivot] = rhs[pivot], rhs[best]
		}

		prow = m.data[pivot*cols : (pivot+1)*cols]
		p = prow[col]
		for j = 0; j < cols; j++ {
			prow[j] /= p
		}
		rhs[pivot] /= p

		for r = 0; r < rows; r++ {
			if r == pivot {
				continue
			}
			orow = m.data[r*cols : (r+1)*cols]
			if f = orow[col]; f == 0 {
				continue
			}
			for j = 0; j < cols; j++ {
				orow[j] -= f * prow[j]
			}
			rhs[r] -= f * rhs[pivot]
		}
		rowOf[col] = pivot
		pivot++
	}

	x := make([]float64, cols)
	for col = 0; col < cols; col++ {
		if rowOf[col] >= 0 {
			x[col] = rhs[rowOf[col]]
		}
	}

	return x, skipped, nil
}
