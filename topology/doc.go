// SPDX-License-Identifier: MIT

// Package topology stores a circuit graph as a vertex-by-edge incidence
// matrix and answers the structural questions the mesh solver asks of it.
//
// Representation:
//
//   - inc[v][e] is +1 when edge e leaves vertex v, −1 when it enters v and 0
//     otherwise. Every live column therefore holds exactly one +1 and one −1.
//   - A directed self-loop adds +1 and −1 to the same cell, leaving a zero
//     column. Such an edge touches no vertex and is never part of a tree.
//   - Vertices and edges are dense 0-based indices. RemoveVertex and
//     RemoveEdge shift every higher index down by one.
//
// Core methods:
//
//	// Mutation
//	AddEdge(v1, v2 int) (int, error)      // grows vertices on demand, O(V) amortized
//	Connect(v1, v2, e int) error          // rewrites column e in place, O(V)
//	RemoveEdge(e int) error               // O(V·E)
//	RemoveVertex(v int) error             // O(V)
//
//	// Queries
//	Opposite(v, e int) (int, error)       // other endpoint of e, O(V)
//	Endpoints(e int) (from, to int, err)  // O(V)
//	Edges(v) / EdgesBetween(v1, v2)       // O(E)
//	Degree(v int) int                     // 0 for unknown vertices, O(E)
//
//	// Traversal
//	SpanningTree(root int) (*Topology, error)
//	Loop(v int) ([]int, error)
//	FundamentalLoops(root int) (chords []int, loops [][]int, err error)
//	Connected() bool
//
// Traversals use an explicit stack and scan edges in ascending column order,
// so results are deterministic for a given matrix.
//
// Errors:
//
//	ErrOutOfRange    - vertex or edge index outside the matrix.
//	ErrNotIncident   - Opposite called with an edge that does not touch the vertex.
//	ErrDetachedEdge  - Endpoints called on a zero column.
//
// A Topology is not safe for concurrent mutation; its owner serialises access.
package topology
