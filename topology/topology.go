// SPDX-License-Identifier: MIT
// File: topology.go
// Role: Topology type, construction and mutation: AddEdge/Connect/RemoveEdge/RemoveVertex.
// Determinism:
//   - New edges always take the next column index; removals compact indices.

package topology

// Topology is a vertex-by-edge incidence matrix.
// The zero value is an empty graph ready for use.
type Topology struct {
	inc   [][]int8 // inc[v][e] ∈ {−1, 0, +1}
	edges int      // column count, tracked apart from rows so V=0 keeps it
}

// New returns an empty Topology.
func New() *Topology { return &Topology{} }

// NewSized returns a Topology with v vertices and e edge columns, all zero.
// Negative sizes are clamped to zero.
func NewSized(v, e int) *Topology {
	if v < 0 {
		v = 0
	}
	if e < 0 {
		e = 0
	}
	t := &Topology{inc: make([][]int8, v), edges: e}
	for i := range t.inc {
		t.inc[i] = make([]int8, e)
	}

	return t
}

// VertexCount returns the number of vertices (rows).
func (t *Topology) VertexCount() int { return len(t.inc) }

// EdgeCount returns the number of edges (columns).
func (t *Topology) EdgeCount() int { return t.edges }

// At returns inc[v][e].
func (t *Topology) At(v, e int) (int8, error) {
	if !t.validVertex(v) {
		return 0, vertexErrorf("At", v, ErrOutOfRange)
	}
	if !t.validEdge(e) {
		return 0, edgeErrorf("At", e, ErrOutOfRange)
	}

	return t.inc[v][e], nil
}

// AddEdge appends a column oriented v1 → v2 (+1 at v1, −1 at v2) and returns
// its index. Missing vertices up to max(v1, v2) are appended as zero rows.
// v1 == v2 yields a zero column.
//
// Errors: ErrOutOfRange for a negative index.
// Complexity: O(V) amortized for the column append, plus O(E) per new vertex.
func (t *Topology) AddEdge(v1, v2 int) (int, error) {
	if v1 < 0 {
		return 0, vertexErrorf("AddEdge", v1, ErrOutOfRange)
	}
	if v2 < 0 {
		return 0, vertexErrorf("AddEdge", v2, ErrOutOfRange)
	}
	for len(t.inc) <= v1 || len(t.inc) <= v2 {
		t.inc = append(t.inc, make([]int8, t.edges))
	}
	for i := range t.inc {
		t.inc[i] = append(t.inc[i], 0)
	}
	e := t.edges
	t.edges++
	t.inc[v1][e]++
	t.inc[v2][e]--

	return e, nil
}

// Connect rewrites column e so that it runs v1 → v2. Any previous endpoints
// of e are cleared.
//
// Errors: ErrOutOfRange for any invalid index.
func (t *Topology) Connect(v1, v2, e int) error {
	if !t.validVertex(v1) {
		return vertexErrorf("Connect", v1, ErrOutOfRange)
	}
	if !t.validVertex(v2) {
		return vertexErrorf("Connect", v2, ErrOutOfRange)
	}
	if !t.validEdge(e) {
		return edgeErrorf("Connect", e, ErrOutOfRange)
	}
	for i := range t.inc {
		t.inc[i][e] = 0
	}
	t.inc[v1][e]++
	t.inc[v2][e]--

	return nil
}

// RemoveEdge deletes column e; higher columns shift left by one.
//
// Errors: ErrOutOfRange.
func (t *Topology) RemoveEdge(e int) error {
	if !t.validEdge(e) {
		return edgeErrorf("RemoveEdge", e, ErrOutOfRange)
	}
	for i, row := range t.inc {
		t.inc[i] = append(row[:e], row[e+1:]...)
	}
	t.edges--

	return nil
}

// RemoveVertex deletes row v; higher rows shift up by one. Edges touching v
// are left with a single non-zero entry; the caller owns that cleanup.
//
// Errors: ErrOutOfRange.
func (t *Topology) RemoveVertex(v int) error {
	if !t.validVertex(v) {
		return vertexErrorf("RemoveVertex", v, ErrOutOfRange)
	}
	t.inc = append(t.inc[:v], t.inc[v+1:]...)

	return nil
}

// Clone returns a deep copy.
func (t *Topology) Clone() *Topology {
	c := &Topology{inc: make([][]int8, len(t.inc)), edges: t.edges}
	for i, row := range t.inc {
		c.inc[i] = append([]int8(nil), row...)
	}

	return c
}

func (t *Topology) validVertex(v int) bool { return v >= 0 && v < len(t.inc) }

func (t *Topology) validEdge(e int) bool { return e >= 0 && e < t.edges }
