// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/dcmesh/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestAddSub covers element-wise addition and subtraction plus shape errors.
func TestAddSub(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := mustDense(t, [][]float64{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, "[6, 8]\n[10, 12]\n", sum.String())

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, "[-4, -4]\n[-4, -4]\n", diff.String())

	c := mustDense(t, [][]float64{{1, 2, 3}})
	_, err = matrix.Add(a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMulAgainstGonum cross-checks Mul with gonum on a rectangular product.
func TestMulAgainstGonum(t *testing.T) {
	ar := [][]float64{{1, 0, -1}, {-1, 1, 0}}
	br := [][]float64{{2, 1}, {0, 3}, {4, 0}}
	got, err := matrix.Mul(mustDense(t, ar), mustDense(t, br))
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(mat.NewDense(2, 3, flatten(ar)), mat.NewDense(3, 2, flatten(br)))

	r, c := got.Shape()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := got.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want.At(i, j), v, tol)
		}
	}
}

// TestMulDimensionMismatch rejects a.Cols != b.Rows.
func TestMulDimensionMismatch(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}})
	_, err := matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestTransposeNegAbs covers the unary kernels and operand immutability.
func TestTransposeNegAbs(t *testing.T) {
	m := mustDense(t, [][]float64{{1, -2, 3}, {-4, 5, -6}})

	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	require.Equal(t, "[1, -4]\n[-2, 5]\n[3, -6]\n", tr.String())

	neg, err := matrix.Neg(m)
	require.NoError(t, err)
	require.Equal(t, "[-1, 2, -3]\n[4, -5, 6]\n", neg.String())

	abs, err := matrix.Abs(m)
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]\n[4, 5, 6]\n", abs.String())

	// operand untouched
	require.Equal(t, "[1, -2, 3]\n[-4, 5, -6]\n", m.String())

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestResidual checks A·x − b on an exact solution and a perturbed one.
func TestResidual(t *testing.T) {
	a := mustDense(t, [][]float64{{2, 1}, {1, 3}})
	b := mustVector(t, 3, 4)

	r, err := matrix.Residual(a, mustVector(t, 1, 1), b)
	require.NoError(t, err)
	require.Equal(t, 0.0, r.MaxAbs())

	r, err = matrix.Residual(a, mustVector(t, 1, 2), b)
	require.NoError(t, err)
	require.Equal(t, 3.0, r.MaxAbs())

	_, err = matrix.Residual(a, mustVector(t, 1, 1), mustVector(t, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
