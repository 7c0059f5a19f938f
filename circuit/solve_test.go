// SPDX-License-Identifier: MIT
package circuit_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/katalvlaran/dcmesh/circuit"
	"github.com/katalvlaran/dcmesh/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSeries(t *testing.T) {
	c := assemble(t, series)
	require.NoError(t, c.Initialize())
	require.Equal(t, circuit.Solved, c.State())

	for _, l := range []string{"V1", "R1", "R2"} {
		assert.InDelta(t, 0.5, current(t, c, l), eps, l)
	}
	assert.InDelta(t, 5.0, voltage(t, c, "R1"), eps)
	assert.InDelta(t, 5.0, voltage(t, c, "R2"), eps)
	assert.InDelta(t, 10.0, voltage(t, c, "V1"), eps)

	p, err := c.Potentials()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 10, 5}, p, eps)

	v, err := c.VoltageBetween(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, eps)

	require.Equal(t, []string{"R2"}, c.Chords())
	require.Equal(t, [][]int{{-1, -1, -1}}, c.LoopMatrix())
}

func TestSolveParallel(t *testing.T) {
	c := assemble(t, parallel)
	require.NoError(t, c.Initialize())

	iS, i1, i2 := current(t, c, "V1"), current(t, c, "R1"), current(t, c, "R2")
	assert.InDelta(t, 3.0, iS, eps)
	assert.InDelta(t, 1.0, i1, eps)
	assert.InDelta(t, 2.0, i2, eps)
	assert.InDelta(t, iS, i1+i2, eps)
	assert.InDelta(t, 5.0/10.0, i1/i2, eps) // inversely proportional to R

	v, err := c.VoltageBetween(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, eps)
}

func TestSolveBridgeKirchhoff(t *testing.T) {
	c := assemble(t, bridge)
	require.NoError(t, c.Initialize())
	require.Len(t, c.Chords(), c.Len()-(c.VertexCount()-1))

	kcl, kvl, err := c.Residuals()
	require.NoError(t, err)
	assert.Less(t, kcl, 1e-6)
	assert.Less(t, kvl, 1e-6)

	// every branch agrees with the potentials: rise from From to To
	p, err := c.Potentials()
	require.NoError(t, err)
	for _, comp := range c.Components() {
		rise := p[comp.To] - p[comp.From]
		if comp.Kind == circuit.Resistor {
			assert.InDelta(t, -comp.Current*comp.Value, rise, 1e-6, comp.Label)
		} else {
			assert.InDelta(t, comp.Value, rise, 1e-6, comp.Label)
		}
	}
}

func TestGroundReadsZero(t *testing.T) {
	c := assemble(t, bridge)
	for g := 0; g < c.VertexCount(); g++ {
		require.NoError(t, c.SetGround(g))
		require.NoError(t, c.Initialize())
		p, err := c.Potential(g)
		require.NoError(t, err)
		require.Equal(t, 0.0, p)
	}
	require.ErrorIs(t, c.SetGround(c.VertexCount()), circuit.ErrOutOfRange)
}

func TestGroundShiftsPotentials(t *testing.T) {
	c := assemble(t, series)
	require.NoError(t, c.SetGround(1))
	require.NoError(t, c.Initialize())

	p, err := c.Potentials()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-10, 0, -5}, p, eps)
}

func TestResetIsIdempotent(t *testing.T) {
	c := assemble(t, bridge)
	require.NoError(t, c.Initialize())
	before := c.Components()

	c.Reset()
	require.Equal(t, circuit.Editing, c.State())
	require.Empty(t, c.Chords())
	require.ErrorIs(t, c.Solve(), circuit.ErrNotInitialized)

	require.NoError(t, c.Initialize())
	after := c.Components()
	for i := range before {
		assert.InDelta(t, before[i].Current, after[i].Current, eps, before[i].Label)
		assert.InDelta(t, before[i].Voltage, after[i].Voltage, eps, before[i].Label)
	}
}

func TestEditValueResolvesOnSameLoops(t *testing.T) {
	c := assemble(t, series)
	require.NoError(t, c.Initialize())

	require.NoError(t, c.EditValue("R2", 30))
	require.Equal(t, circuit.Solved, c.State())
	require.NoError(t, c.Solve())
	assert.InDelta(t, 0.25, current(t, c, "R1"), eps)
	assert.InDelta(t, 7.5, voltage(t, c, "R2"), eps)

	require.NoError(t, c.EditValue("V1", 20))
	require.NoError(t, c.Solve())
	assert.InDelta(t, 0.5, current(t, c, "V1"), eps)
	assert.InDelta(t, 20.0, voltage(t, c, "V1"), eps)
}

func TestStructuralEditDropsSnapshot(t *testing.T) {
	c := assemble(t, series)
	require.NoError(t, c.Initialize())

	require.NoError(t, c.AddComponent(circuit.Resistor, "R3", 10, 1, 2))
	require.Equal(t, circuit.Editing, c.State())
	_, err := c.Potential(0)
	require.ErrorIs(t, err, circuit.ErrNotInitialized)
	_, _, err = c.Residuals()
	require.ErrorIs(t, err, circuit.ErrNotInitialized)

	require.NoError(t, c.Initialize())
	// R1 ∥ R3 = 5 Ω in series with R2: 10 V / 15 Ω
	assert.InDelta(t, 10.0/15.0, current(t, c, "V1"), eps)
}

func TestInitializeErrors(t *testing.T) {
	require.ErrorIs(t, circuit.New().Initialize(), circuit.ErrEmptyCircuit)

	c := assemble(t, []part{
		{circuit.VoltageSource, "V1", 5, 0, 1},
		{circuit.Resistor, "R1", 5, 2, 3},
	})
	require.ErrorIs(t, c.Initialize(), circuit.ErrDisconnected)
	require.Equal(t, circuit.Editing, c.State())
}

func TestTreeCircuitCarriesNoCurrent(t *testing.T) {
	c := assemble(t, []part{
		{circuit.VoltageSource, "V1", 9, 0, 1},
		{circuit.Resistor, "R1", 3, 1, 2},
	})
	require.NoError(t, c.Initialize())
	require.Empty(t, c.Chords())
	assert.Equal(t, 0.0, current(t, c, "R1"))

	p, err := c.Potentials()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 9, 9}, p, eps)
}

func TestStrictPivotOnSourceOnlyLoop(t *testing.T) {
	sources := []part{
		{circuit.VoltageSource, "V1", 10, 0, 1},
		{circuit.VoltageSource, "V2", 10, 0, 1},
	}

	lenient := assemble(t, sources)
	require.NoError(t, lenient.Initialize())
	v, err := lenient.VoltageBetween(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, eps)

	strict := assemble(t, sources, circuit.WithStrictPivot())
	err = strict.Initialize()
	require.ErrorIs(t, err, matrix.ErrSingular)
	require.Equal(t, circuit.Editing, strict.State())
}

// recorder is an Observer that keeps every stats value.
type recorder struct{ stats []circuit.SolveStats }

func (r *recorder) ObserveSolve(s circuit.SolveStats) { r.stats = append(r.stats, s) }

func TestObserverAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &recorder{}

	c := assemble(t, series, circuit.WithObserver(rec), circuit.WithLogger(logger))
	require.NoError(t, c.Initialize())

	require.Len(t, rec.stats, 1)
	s := rec.stats[0]
	assert.Equal(t, 3, s.Vertices)
	assert.Equal(t, 3, s.Edges)
	assert.Equal(t, 1, s.Chords)
	assert.Equal(t, matrix.MethodGaussSeidel, s.Mesh.Method)
	assert.True(t, s.Mesh.Converged)
	assert.Equal(t, matrix.MethodGaussJordan, s.Nodal.Method)
	assert.NoError(t, s.Err)

	assert.Contains(t, buf.String(), `"msg":"circuit solved"`)
	assert.Contains(t, buf.String(), `"msg":"component added"`)
}

func TestIterationCapIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := assemble(t, parallel, circuit.WithMaxIterations(1), circuit.WithTolerance(0), circuit.WithLogger(logger))
	require.NoError(t, c.Initialize())
	assert.Contains(t, buf.String(), "gauss-seidel stopped at iteration cap")
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { circuit.WithTolerance(-1) })
	assert.Panics(t, func() { circuit.WithMaxIterations(-1) })
	assert.Panics(t, func() { circuit.WithPivotEpsilon(-1) })
}
