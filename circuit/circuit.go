// SPDX-License-Identifier: MIT

package circuit

import (
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/dcmesh/topology"
)

// State is the lifecycle phase of a Circuit.
type State int

const (
	// Editing allows structural edits; there is no loop snapshot.
	Editing State = iota
	// Solved holds a spanning-tree snapshot and the last solution.
	Solved
)

// String returns "editing" or "solved".
func (s State) String() string {
	if s == Solved {
		return "solved"
	}

	return "editing"
}

// Circuit owns a topology and the components on its edges.
type Circuit struct {
	opts  Options
	log   *slog.Logger
	topo  *topology.Topology
	parts arena

	ground int
	state  State

	// loop snapshot, valid in Solved
	chords []int
	loops  [][]int

	// potential per vertex; nil until the first solve after a structural edit
	potential []float64

	labelSeq map[Kind]int
}

// New returns an empty Circuit in the Editing state with ground 0.
func New(opts ...Option) *Circuit {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return &Circuit{
		opts:     o,
		log:      o.Logger,
		topo:     topology.New(),
		parts:    newArena(),
		labelSeq: make(map[Kind]int),
	}
}

// AddComponent appends a component oriented v1 → v2. Vertices up to
// max(v1, v2) are created on demand. Nothing changes on failure.
//
// Errors:
//   - ErrInvalidKind, ErrDuplicateLabel, ErrInvalidValue.
//   - ErrOutOfRange for a negative vertex; ErrSelfLoop for v1 == v2.
func (c *Circuit) AddComponent(kind Kind, label string, value float64, v1, v2 int) error {
	if !kind.Valid() {
		return circuitErrorf("AddComponent", label, ErrInvalidKind)
	}
	if _, ok := c.parts.byLabel[label]; ok {
		return circuitErrorf("AddComponent", label, ErrDuplicateLabel)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return circuitErrorf("AddComponent", label, ErrInvalidValue)
	}
	if v1 < 0 || v2 < 0 {
		return circuitErrorf("AddComponent", label, ErrOutOfRange)
	}
	if v1 == v2 {
		return circuitErrorf("AddComponent", label, ErrSelfLoop)
	}

	e, err := c.topo.AddEdge(v1, v2)
	if err != nil {
		return circuitErrorf("AddComponent", label, err)
	}
	c.parts.insert(kind, label, value)
	c.dropSnapshot()
	c.log.Debug("component added",
		slog.String("label", label), slog.String("kind", kind.String()),
		slog.Float64("value", value), slog.Int("from", v1), slog.Int("to", v2), slog.Int("edge", e))

	return nil
}

// RemoveComponent deletes the component and then every one of its terminals
// left without edges, highest index first. Higher vertices, and the ground,
// shift down accordingly; a removed ground resets to 0.
//
// Errors: ErrNotFound.
func (c *Circuit) RemoveComponent(label string) error {
	h, _, col, ok := c.parts.lookup(label)
	if !ok {
		return circuitErrorf("RemoveComponent", label, ErrNotFound)
	}
	from, to, err := c.topo.Endpoints(col)
	if err != nil {
		return circuitErrorf("RemoveComponent", label, err)
	}
	if err = c.topo.RemoveEdge(col); err != nil {
		return circuitErrorf("RemoveComponent", label, err)
	}
	c.parts.remove(h, col)

	// highest first keeps the lower index valid
	hi, lo := max(from, to), min(from, to)
	for _, v := range []int{hi, lo} {
		if c.topo.Degree(v) != 0 {
			continue
		}
		if err = c.topo.RemoveVertex(v); err != nil {
			return circuitErrorf("RemoveComponent", label, err)
		}
		switch {
		case c.ground == v:
			c.ground = 0
		case c.ground > v:
			c.ground--
		}
		c.log.Debug("isolated vertex removed", slog.Int("vertex", v))
	}
	c.dropSnapshot()
	c.log.Debug("component removed", slog.String("label", label), slog.Int("edge", col))

	return nil
}

// EditValue sets the resistance of a resistor or the voltage of a source.
// The loop snapshot survives; call Solve to refresh the solution.
//
// Errors: ErrNotFound, ErrInvalidValue.
func (c *Circuit) EditValue(label string, value float64) error {
	_, s, _, ok := c.parts.lookup(label)
	if !ok {
		return circuitErrorf("EditValue", label, ErrNotFound)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return circuitErrorf("EditValue", label, ErrInvalidValue)
	}
	s.value = value
	c.log.Debug("component value edited", slog.String("label", label), slog.Float64("value", value))

	return nil
}

// EditLabel renames a component. Renaming to the same label is a no-op.
//
// Errors: ErrNotFound, ErrDuplicateLabel.
func (c *Circuit) EditLabel(label, newLabel string) error {
	h, _, _, ok := c.parts.lookup(label)
	if !ok {
		return circuitErrorf("EditLabel", label, ErrNotFound)
	}
	if newLabel == label {
		return nil
	}
	if _, taken := c.parts.byLabel[newLabel]; taken {
		return circuitErrorf("EditLabel", newLabel, ErrDuplicateLabel)
	}
	c.parts.rename(h, label, newLabel)
	c.log.Debug("component renamed", slog.String("from", label), slog.String("to", newLabel))

	return nil
}

// SetGround selects the reference vertex for potentials.
//
// Errors: ErrOutOfRange.
func (c *Circuit) SetGround(v int) error {
	if v < 0 || v >= c.topo.VertexCount() {
		return circuitErrorf("SetGround", v, ErrOutOfRange)
	}
	c.ground = v

	return nil
}

// Ground returns the reference vertex.
func (c *Circuit) Ground() int { return c.ground }

// NextLabel returns an unused label for kind ("R1", "R2", ... or "V1", ...)
// from a per-circuit counter.
//
// Errors: ErrInvalidKind.
func (c *Circuit) NextLabel(kind Kind) (string, error) {
	if !kind.Valid() {
		return "", circuitErrorf("NextLabel", kind, ErrInvalidKind)
	}
	n := c.labelSeq[kind]
	var label string
	for {
		n++
		label = kind.prefix() + strconv.Itoa(n)
		if _, taken := c.parts.byLabel[label]; !taken {
			break
		}
	}
	c.labelSeq[kind] = n

	return label, nil
}

// Component returns a snapshot of one component.
//
// Errors: ErrNotFound.
func (c *Circuit) Component(label string) (Component, error) {
	_, s, col, ok := c.parts.lookup(label)
	if !ok {
		return Component{}, circuitErrorf("Component", label, ErrNotFound)
	}

	return c.snapshot(s, col), nil
}

// Components returns snapshots of every component in insertion order.
func (c *Circuit) Components() []Component {
	out := make([]Component, len(c.parts.order))
	for col := range c.parts.order {
		out[col] = c.snapshot(c.parts.at(col), col)
	}

	return out
}

func (c *Circuit) snapshot(s *slot, col int) Component {
	from, to, _ := c.topo.Endpoints(col)

	return Component{
		Label:   s.label,
		Kind:    s.kind,
		Value:   s.value,
		From:    from,
		To:      to,
		Current: s.current,
		Voltage: s.voltage,
	}
}

// Labels returns every label, sorted.
func (c *Circuit) Labels() []string {
	out := make([]string, 0, len(c.parts.byLabel))
	for l := range c.parts.byLabel {
		out = append(out, l)
	}
	sort.Strings(out)

	return out
}

// Len returns the number of components (edges).
func (c *Circuit) Len() int { return len(c.parts.order) }

// VertexCount returns the number of vertices.
func (c *Circuit) VertexCount() int { return c.topo.VertexCount() }

// State returns the lifecycle phase.
func (c *Circuit) State() State { return c.state }

// Topology returns a copy of the underlying incidence graph.
func (c *Circuit) Topology() *topology.Topology { return c.topo.Clone() }

// Chords returns the labels of the chord components of the current snapshot.
func (c *Circuit) Chords() []string {
	out := make([]string, len(c.chords))
	for i, col := range c.chords {
		out[i] = c.parts.at(col).label
	}

	return out
}

// LoopMatrix returns a copy of the fundamental loop matrix: one row per
// chord, one signed column per component.
func (c *Circuit) LoopMatrix() [][]int {
	out := make([][]int, len(c.loops))
	for i, l := range c.loops {
		out[i] = append([]int(nil), l...)
	}

	return out
}

// dropSnapshot returns to Editing after a structural edit.
func (c *Circuit) dropSnapshot() {
	c.state = Editing
	c.chords, c.loops = nil, nil
	c.potential = nil
}

// clone deep-copies the circuit state for all-or-nothing batch edits.
func (c *Circuit) clone() *Circuit {
	cp := *c
	cp.topo = c.topo.Clone()
	cp.parts = c.parts.clone()
	cp.chords = append([]int(nil), c.chords...)
	cp.loops = c.LoopMatrix()
	cp.potential = append([]float64(nil), c.potential...)
	cp.labelSeq = make(map[Kind]int, len(c.labelSeq))
	for k, v := range c.labelSeq {
		cp.labelSeq[k] = v
	}

	return &cp
}
