// SPDX-License-Identifier: MIT
// File: query.go
// Role: read-only queries: Opposite/Endpoints/Edges/EdgesBetween/Degree/HasEdge/Incidence/String.
// Determinism:
//   - Edge lists are returned in ascending column order.

package topology

import (
	"strconv"
	"strings"
)

// Opposite returns the other endpoint of edge e as seen from vertex v.
//
// Errors:
//   - ErrOutOfRange for invalid v or e.
//   - ErrNotIncident when e does not touch v.
//
// Complexity: O(V).
func (t *Topology) Opposite(v, e int) (int, error) {
	if !t.validVertex(v) {
		return 0, vertexErrorf("Opposite", v, ErrOutOfRange)
	}
	if !t.validEdge(e) {
		return 0, edgeErrorf("Opposite", e, ErrOutOfRange)
	}
	if t.inc[v][e] == 0 {
		return 0, edgeErrorf("Opposite", e, ErrNotIncident)
	}

	return t.opposite(v, e), nil
}

// opposite is the unchecked scan; it returns v itself if no other row is set.
func (t *Topology) opposite(v, e int) int {
	for i, row := range t.inc {
		if i != v && row[e] != 0 {
			return i
		}
	}

	return v
}

// Endpoints returns the oriented pair (from, to) of edge e: the rows holding
// +1 and −1 respectively.
//
// Errors:
//   - ErrOutOfRange for invalid e.
//   - ErrDetachedEdge when the column is all zero or lacks either sign.
func (t *Topology) Endpoints(e int) (from, to int, err error) {
	if !t.validEdge(e) {
		return 0, 0, edgeErrorf("Endpoints", e, ErrOutOfRange)
	}
	from, to = -1, -1
	for i, row := range t.inc {
		switch {
		case row[e] > 0:
			from = i
		case row[e] < 0:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return 0, 0, edgeErrorf("Endpoints", e, ErrDetachedEdge)
	}

	return from, to, nil
}

// HasEdge reports whether column e exists and has at least one non-zero entry.
func (t *Topology) HasEdge(e int) bool {
	if !t.validEdge(e) {
		return false
	}
	for _, row := range t.inc {
		if row[e] != 0 {
			return true
		}
	}

	return false
}

// Edges returns every edge incident to v.
//
// Errors: ErrOutOfRange.
func (t *Topology) Edges(v int) ([]int, error) {
	if !t.validVertex(v) {
		return nil, vertexErrorf("Edges", v, ErrOutOfRange)
	}
	var out []int
	for e, x := range t.inc[v] {
		if x != 0 {
			out = append(out, e)
		}
	}

	return out, nil
}

// EdgesBetween returns the (possibly parallel) edges joining v1 and v2.
// For v1 == v2 this is Edges(v1).
//
// Errors: ErrOutOfRange.
func (t *Topology) EdgesBetween(v1, v2 int) ([]int, error) {
	if !t.validVertex(v1) {
		return nil, vertexErrorf("EdgesBetween", v1, ErrOutOfRange)
	}
	if !t.validVertex(v2) {
		return nil, vertexErrorf("EdgesBetween", v2, ErrOutOfRange)
	}
	var out []int
	for e := 0; e < t.edges; e++ {
		if t.inc[v1][e] != 0 && t.inc[v2][e] != 0 {
			out = append(out, e)
		}
	}

	return out, nil
}

// Degree returns the number of edges incident to v, or 0 when v is out of
// range. Callers use it to spot isolated vertices after a deletion.
func (t *Topology) Degree(v int) int {
	if !t.validVertex(v) {
		return 0
	}
	n := 0
	for _, x := range t.inc[v] {
		if x != 0 {
			n++
		}
	}

	return n
}

// Incidence returns a deep copy of the matrix, vertex-major.
func (t *Topology) Incidence() [][]int8 {
	return t.Clone().inc
}

// String renders one bracketed row per vertex, e.g. "[1, -1, 0]\n".
func (t *Topology) String() string {
	var b strings.Builder
	for _, row := range t.inc {
		b.WriteByte('[')
		for e, x := range row {
			if e > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(int(x)))
		}
		b.WriteString("]\n")
	}

	return b.String()
}
