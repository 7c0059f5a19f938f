// SPDX-License-Identifier: MIT

// Package circuit assembles resistors and ideal voltage sources into a
// directed graph and solves the DC network with a mesh phase followed by a
// nodal phase.
//
// Model:
//
//   - Every component is one edge of a topology.Topology, oriented from its
//     first vertex to its second. Edge column e always belongs to the e-th
//     component in insertion order.
//   - A voltage source raises the potential by its value from vtx1 to vtx2.
//   - A resistor's reported voltage is I·R, the drop along its orientation.
//     A positive current flows from vtx1 to vtx2.
//   - Components are addressed by label; internally they live in an arena of
//     generational handles, so removal never shifts another component's
//     identity.
//   - Vertices are dense indices. Removing a component removes every endpoint
//     left with no edges, renumbering higher vertices (and the ground) down.
//
// Lifecycle:
//
//	Editing --Initialize()--> Solved --Reset() or a structural edit--> Editing
//
// Initialize computes the spanning tree rooted at vertex 0, its chords and
// their fundamental loops, then calls Solve. Solve may be called again in the
// Solved state after EditValue to re-solve with new values on the same loops.
//
// Solve:
//
//  1. Mesh phase (only with chords): Z = diag(R), Vin = source voltages,
//     B = loop matrix. (B·Z·Bᵀ)·Im = B·Vin, then I = Bᵀ·Im.
//  2. Nodal phase: V = Vin − Z·I, (M·Mᵀ)·P' = M·V with M the incidence
//     matrix, P = −P' shifted so that P[ground] == 0.
//
// Each phase goes through matrix.EquationSystem, which picks Gauss–Seidel when
// the Sassenfeld test passes and Gauss–Jordan otherwise. The nodal matrix is a
// graph Laplacian and always singular; strict pivoting therefore applies to
// the mesh phase only.
//
// Persistence:
//
//	Save/Load stream the little-endian record format
//	  int32 kind | uint32 n | n label bytes | float64 value | uint32 vtx1 | uint32 vtx2
//	with no header. Solved values are not persisted; call Initialize after Load.
//
// A Circuit is not safe for concurrent use.
package circuit
