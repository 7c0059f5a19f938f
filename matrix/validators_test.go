// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dcmesh/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateSameShape(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 2}})
	require.NoError(t, matrix.ValidateSameShape(a, a.Clone()))
	require.ErrorIs(t, matrix.ValidateSameShape(a, mustDense(t, [][]float64{{1}, {2}})), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateBinarySameShape(a, nil), matrix.ErrNilMatrix)
}

func TestValidateSquare(t *testing.T) {
	require.NoError(t, matrix.ValidateSquare(mustDense(t, [][]float64{{1, 0}, {0, 1}})))
	require.ErrorIs(t, matrix.ValidateSquare(mustDense(t, [][]float64{{1, 0}})), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
}

func TestValidateSystem(t *testing.T) {
	a := mustDense(t, [][]float64{{1, 0, 0}, {0, 1, 0}})
	require.NoError(t, matrix.ValidateSystem(a, mustVector(t, 1, 2)))
	require.ErrorIs(t, matrix.ValidateSystem(a, mustVector(t, 1, 2, 3)), matrix.ErrDimensionMismatch)
}

func TestValidateFinite(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(m))

	// Set refuses non-finite values, so the only way in is arithmetic overflow.
	big := mustDense(t, [][]float64{{math.MaxFloat64, 0}, {0, 0}})
	sum, err := matrix.Add(big, big)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateFinite(sum), matrix.ErrNaNInf)
}
