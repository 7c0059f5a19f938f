// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures for kernels and solvers.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/dcmesh/matrix"
	"github.com/stretchr/testify/require"
)

// tol is the comparison tolerance for solver results.
const tol = 1e-9

// mustDense builds a Dense from literal rows or fails the test.
func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// mustVector builds an n×1 column vector or fails the test.
func mustVector(t testing.TB, values ...float64) *matrix.Dense {
	t.Helper()
	v, err := matrix.NewVectorFrom(values)
	require.NoError(t, err)

	return v
}

// column returns column 0 of m.
func column(t *testing.T, m *matrix.Dense) []float64 {
	t.Helper()
	c, err := m.Col(0)
	require.NoError(t, err)

	return c
}

// diagonallyDominant returns a reproducible n×n strictly diagonally dominant
// matrix and a right-hand side, both seeded from seed.
func diagonallyDominant(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	a := make([][]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		var off float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			a[i][j] = rng.Float64()*2 - 1
			if a[i][j] < 0 {
				off -= a[i][j]
			} else {
				off += a[i][j]
			}
		}
		a[i][i] = off + 1 + rng.Float64()
		b[i] = rng.Float64()*10 - 5
	}

	return a, b
}

// flatten concatenates rows into a single row-major slice (gonum layout).
func flatten(rows [][]float64) []float64 {
	out := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		out = append(out, r...)
	}

	return out
}
