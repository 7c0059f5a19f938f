// Package dcmesh is a DC resistive circuit solver: build a network of
// resistors and ideal voltage sources, and get every branch current,
// component voltage and node potential.
//
// 🚀 How it solves
//
//	The network is an incidence graph. A spanning tree splits its edges
//	into tree branches and chords; each chord closes one fundamental loop.
//		• Mesh phase: (B·Z·Bᵀ)·Im = B·Vin gives loop currents, I = Bᵀ·Im
//		• Nodal phase: (M·Mᵀ)·P = M·(Vin − Z·I) gives potentials
//	Each linear system is solved by Gauss–Seidel when the Sassenfeld
//	criterion guarantees convergence, and by Gauss–Jordan with partial
//	pivoting otherwise.
//
// Under the hood:
//
//	topology/   incidence matrix, spanning tree, fundamental loops
//	matrix/     dense matrices, kernels, EquationSystem
//	circuit/    components, lifecycle, solve, binary records
//	netlist/    YAML circuit documents
//	store/      named circuits in SQLite
//	telemetry/  Prometheus solve metrics
//	config/     configuration file for the dcsolve command
//
// Quick ASCII example:
//
//	  (0)──V1 10V──(1)
//	   │            │
//	  R2 10Ω      R1 10Ω
//	   │            │
//	   └────(2)─────┘
//
//	carries 0.5 A around the loop; vertex 2 sits at 5 V.
//
//	go install github.com/katalvlaran/dcmesh/cmd/dcsolve@latest
package dcmesh
