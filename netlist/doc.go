// SPDX-License-Identifier: MIT

// Package netlist reads and writes circuits as YAML documents.
//
// A netlist names the ground vertex, optional solver overrides and the
// component list in insertion order:
//
//	ground: 0
//	solver:
//	  tolerance: 1e-10
//	  strict_pivot: true
//	components:
//	  - {kind: vsource, label: V1, value: 10, from: 0, to: 1}
//	  - {kind: resistor, label: R1, value: 10, from: 1, to: 2}
//	  - {kind: resistor, value: 10, from: 2, to: 0}   # labelled R2
//
// Kinds accept the aliases of circuit.ParseKind. A component without a
// label receives the next free one from circuit.Circuit.NextLabel, skipping
// labels used explicitly anywhere in the document.
//
// Decode validates the whole document before anything is built, so Build
// never panics on solver values that came from a file.
package netlist
