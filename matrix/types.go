// SPDX-License-Identifier: MIT

// Package matrix: solver-facing types. Errors and options live in
// dedicated files (errors.go, options.go).
package matrix

// Method names the algorithm that produced a solution.
type Method int

const (
	// MethodNone means no solve has run yet.
	MethodNone Method = iota
	// MethodGaussSeidel is the iterative sweep, chosen when the Sassenfeld test passes.
	MethodGaussSeidel
	// MethodGaussJordan is elimination with partial pivoting.
	MethodGaussJordan
)

// String returns a stable lower-case label, used as a metrics label value.
func (m Method) String() string {
	switch m {
	case MethodGaussSeidel:
		return "gauss_seidel"
	case MethodGaussJordan:
		return "gauss_jordan"
	default:
		return "none"
	}
}

// Report summarises the most recent Solution call.
//   - Iterations counts Gauss–Seidel sweeps (0 for Gauss–Jordan).
//   - Converged is false when Gauss–Seidel hit the iteration cap.
//   - Skipped lists the pivot columns Gauss–Jordan left free (assigned 0).
type Report struct {
	Method     Method
	Iterations int
	Converged  bool
	Skipped    []int
}
