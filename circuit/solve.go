// SPDX-License-Identifier: MIT

package circuit

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/dcmesh/matrix"
)

// Operation tags for solver errors.
const (
	opInitialize = "Initialize"
	opSolve      = "Solve"
	opMesh       = "Solve/mesh"
	opNodal      = "Solve/nodal"
)

// Initialize snapshots the spanning tree rooted at vertex 0, its chords and
// fundamental loops, enters the Solved state and solves. Calling it again
// rebuilds the snapshot from scratch.
//
// Errors:
//   - ErrEmptyCircuit, ErrDisconnected.
//   - any Solve error; the circuit is then left in Editing.
func (c *Circuit) Initialize() error {
	if c.Len() == 0 {
		return circuitErrorf(opInitialize, c.Len(), ErrEmptyCircuit)
	}
	if !c.topo.Connected() {
		return circuitErrorf(opInitialize, c.VertexCount(), ErrDisconnected)
	}
	chords, loops, err := c.topo.FundamentalLoops(0)
	if err != nil {
		return circuitErrorf(opInitialize, 0, err)
	}
	c.chords, c.loops = chords, loops
	c.state = Solved
	c.log.Debug("loops extracted", slog.Int("chords", len(chords)), slog.Int("edges", c.Len()))

	if err = c.Solve(); err != nil {
		c.dropSnapshot()
		return err
	}

	return nil
}

// Reset discards the loop snapshot and returns to Editing. The last solved
// values stay readable until the next structural edit.
func (c *Circuit) Reset() {
	c.state = Editing
	c.chords, c.loops = nil, nil
}

// Solve recomputes every branch current, component voltage and vertex
// potential from the current component values and the loop snapshot.
//
// Implementation:
//   - Stage 1: Z = diag(R), Vin = source voltages, M = incidence.
//   - Stage 2 (chords only): (B·Z·Bᵀ)·Im = B·Vin, I = Bᵀ·Im.
//   - Stage 3: (M·Mᵀ)·P' = M·(Vin − Z·I), P = −P' − (−P'[ground]).
//   - Stage 4: store I per component; resistors get I·R, sources keep their value.
//
// Errors:
//   - ErrNotInitialized outside the Solved state.
//   - matrix.ErrSingular from the mesh phase under WithStrictPivot.
//
// Complexity: O(E³) for the dense products and eliminations.
func (c *Circuit) Solve() error {
	if c.state != Solved {
		return circuitErrorf(opSolve, c.state, ErrNotInitialized)
	}
	start := time.Now()
	stats := SolveStats{Vertices: c.VertexCount(), Edges: c.Len(), Chords: len(c.chords)}

	current, potential, err := c.solve(&stats)
	stats.Duration = time.Since(start)
	stats.Err = err
	if c.opts.Observer != nil {
		c.opts.Observer.ObserveSolve(stats)
	}
	if err != nil {
		c.log.Error("solve failed", slog.Any("err", err))
		return err
	}

	for col := range c.parts.order {
		s := c.parts.at(col)
		s.current = current[col]
		if s.kind == Resistor {
			s.voltage = current[col] * s.value
		} else {
			s.voltage = s.value
		}
	}
	c.potential = potential

	c.logSolve(stats)

	return nil
}

// solve runs both phases and returns per-edge currents and per-vertex potentials.
func (c *Circuit) solve(stats *SolveStats) ([]float64, []float64, error) {
	edges := c.Len()
	z, err := matrix.NewDense(edges, edges)
	if err != nil {
		return nil, nil, circuitErrorf(opSolve, edges, err)
	}
	vin, err := matrix.NewVector(edges)
	if err != nil {
		return nil, nil, circuitErrorf(opSolve, edges, err)
	}
	for col := range c.parts.order {
		s := c.parts.at(col)
		if s.kind == Resistor {
			err = z.Set(col, col, s.value)
		} else {
			err = vin.Set(col, 0, s.value)
		}
		if err != nil {
			return nil, nil, circuitErrorf(opSolve, s.label, err)
		}
	}

	current, err := matrix.NewVector(edges)
	if err != nil {
		return nil, nil, circuitErrorf(opSolve, edges, err)
	}
	if len(c.loops) > 0 {
		if current, stats.Mesh, err = c.meshPhase(z, vin); err != nil {
			return nil, nil, err
		}
	}

	potential, nodal, err := c.nodalPhase(z, vin, current)
	stats.Nodal = nodal
	if err != nil {
		return nil, nil, err
	}
	i, err := current.Col(0)
	if err != nil {
		return nil, nil, circuitErrorf(opSolve, edges, err)
	}

	return i, potential, nil
}

// meshPhase solves the loop-current system and lifts it to branch currents.
func (c *Circuit) meshPhase(z, vin *matrix.Dense) (*matrix.Dense, matrix.Report, error) {
	var rep matrix.Report
	b, err := matrix.FromIntegers(c.loops)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}
	bt, err := matrix.Transpose(b)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}
	bz, err := matrix.Mul(b, z)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}
	a, err := matrix.Mul(bz, bt)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}
	rhs, err := matrix.Mul(b, vin)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}

	sys, err := matrix.NewEquationSystem(a, rhs)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}
	im, err := sys.Solution(c.opts.Tolerance, c.opts.MaxIterations, c.opts.meshOptions()...)
	rep = sys.Report()
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}
	i, err := matrix.Mul(bt, im)
	if err != nil {
		return nil, rep, circuitErrorf(opMesh, len(c.loops), err)
	}

	return i, rep, nil
}

// nodalPhase solves for vertex potentials relative to the ground.
func (c *Circuit) nodalPhase(z, vin, current *matrix.Dense) ([]float64, matrix.Report, error) {
	var rep matrix.Report
	vertices := c.VertexCount()
	m, err := matrix.FromIntegers(c.topo.Incidence())
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	mt, err := matrix.Transpose(m)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	zi, err := matrix.Mul(z, current)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	v, err := matrix.Sub(vin, zi)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	rhs, err := matrix.Mul(m, v)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	lap, err := matrix.Mul(m, mt)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}

	sys, err := matrix.NewEquationSystem(lap, rhs)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	raw, err := sys.Solution(c.opts.Tolerance, c.opts.MaxIterations, c.opts.nodalOptions()...)
	rep = sys.Report()
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	neg, err := matrix.Neg(raw)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	p, err := neg.Col(0)
	if err != nil {
		return nil, rep, circuitErrorf(opNodal, vertices, err)
	}
	ref := p[c.ground]
	for k := range p {
		p[k] -= ref
	}

	return p, rep, nil
}

// logSolve emits one info record per solve and a warning per phase that hit
// the iteration cap.
func (c *Circuit) logSolve(stats SolveStats) {
	for _, ph := range []struct {
		name string
		rep  matrix.Report
	}{{"mesh", stats.Mesh}, {"nodal", stats.Nodal}} {
		if ph.rep.Method == matrix.MethodGaussSeidel && !ph.rep.Converged {
			c.log.Warn("gauss-seidel stopped at iteration cap",
				slog.String("phase", ph.name), slog.Int("iterations", ph.rep.Iterations))
		}
	}
	c.log.Info("circuit solved",
		slog.Int("vertices", stats.Vertices), slog.Int("edges", stats.Edges), slog.Int("chords", stats.Chords),
		slog.String("mesh", stats.Mesh.Method.String()), slog.String("nodal", stats.Nodal.Method.String()),
		slog.Duration("elapsed", stats.Duration))
}

// Current returns the last solved current of a component.
//
// Errors: ErrNotFound.
func (c *Circuit) Current(label string) (float64, error) {
	_, s, _, ok := c.parts.lookup(label)
	if !ok {
		return 0, circuitErrorf("Current", label, ErrNotFound)
	}

	return s.current, nil
}

// Voltage returns a component's terminal voltage: I·R for a resistor, the
// programmed value for a source.
//
// Errors: ErrNotFound.
func (c *Circuit) Voltage(label string) (float64, error) {
	_, s, _, ok := c.parts.lookup(label)
	if !ok {
		return 0, circuitErrorf("Voltage", label, ErrNotFound)
	}

	return s.voltage, nil
}

// Potential returns the solved potential of vertex v relative to the ground.
//
// Errors: ErrNotInitialized before a solve, ErrOutOfRange.
func (c *Circuit) Potential(v int) (float64, error) {
	if c.potential == nil {
		return 0, circuitErrorf("Potential", v, ErrNotInitialized)
	}
	if v < 0 || v >= len(c.potential) {
		return 0, circuitErrorf("Potential", v, ErrOutOfRange)
	}

	return c.potential[v], nil
}

// Potentials returns a copy of every vertex potential.
//
// Errors: ErrNotInitialized before a solve.
func (c *Circuit) Potentials() ([]float64, error) {
	if c.potential == nil {
		return nil, circuitErrorf("Potentials", c.VertexCount(), ErrNotInitialized)
	}

	return append([]float64(nil), c.potential...), nil
}

// VoltageBetween returns potential[v2] − potential[v1].
//
// Errors: ErrNotInitialized before a solve, ErrOutOfRange.
func (c *Circuit) VoltageBetween(v1, v2 int) (float64, error) {
	p1, err := c.Potential(v1)
	if err != nil {
		return 0, err
	}
	p2, err := c.Potential(v2)
	if err != nil {
		return 0, err
	}

	return p2 - p1, nil
}

// Residuals measures how well the last solution satisfies Kirchhoff's laws:
// kcl is the largest |Σ inc[v][e]·I[e]| over vertices, kvl the largest
// |Σ loop[e]·rise[e]| over fundamental loops, where rise is the source value
// or −I·R.
//
// Errors: ErrNotInitialized outside the Solved state or before a solve.
func (c *Circuit) Residuals() (kcl, kvl float64, err error) {
	if c.state != Solved || c.potential == nil {
		return 0, 0, circuitErrorf("Residuals", c.state, ErrNotInitialized)
	}
	inc := c.topo.Incidence()
	cur := make([]float64, c.Len())
	rise := make([]float64, c.Len())
	for col := range c.parts.order {
		s := c.parts.at(col)
		cur[col] = s.current
		if s.kind == Resistor {
			rise[col] = -s.current * s.value
		} else {
			rise[col] = s.value
		}
	}
	var sum float64
	for _, row := range inc {
		sum = 0
		for e, x := range row {
			sum += float64(x) * cur[e]
		}
		kcl = math.Max(kcl, math.Abs(sum))
	}
	for _, loop := range c.loops {
		sum = 0
		for e, x := range loop {
			sum += float64(x) * rise[e]
		}
		kvl = math.Max(kvl, math.Abs(sum))
	}

	return kcl, kvl, nil
}

// String renders "label V: <voltage> I: <current>" per component.
func (c *Circuit) String() string {
	var b strings.Builder
	for _, comp := range c.Components() {
		fmt.Fprintf(&b, "%s V: %g I: %g\n", comp.Label, comp.Voltage, comp.Current)
	}

	return b.String()
}
