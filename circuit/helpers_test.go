// SPDX-License-Identifier: MIT
package circuit_test

import (
	"testing"

	"github.com/katalvlaran/dcmesh/circuit"
	"github.com/stretchr/testify/require"
)

// eps is the comparison tolerance for solved values.
const eps = 1e-9

// part is one AddComponent call.
type part struct {
	kind   circuit.Kind
	label  string
	value  float64
	v1, v2 int
}

// assemble builds a circuit from parts and fails the test on error.
func assemble(t *testing.T, parts []part, opts ...circuit.Option) *circuit.Circuit {
	t.Helper()
	c := circuit.New(opts...)
	for _, p := range parts {
		require.NoError(t, c.AddComponent(p.kind, p.label, p.value, p.v1, p.v2))
	}

	return c
}

// series is a 10 V source driving two 10 Ω resistors around one loop:
// V1 0→1, R1 1→2, R2 2→0.
var series = []part{
	{circuit.VoltageSource, "V1", 10, 0, 1},
	{circuit.Resistor, "R1", 10, 1, 2},
	{circuit.Resistor, "R2", 10, 2, 0},
}

// parallel is a 10 V source across a 10 Ω and a 5 Ω resistor.
var parallel = []part{
	{circuit.VoltageSource, "V1", 10, 0, 1},
	{circuit.Resistor, "R1", 10, 1, 0},
	{circuit.Resistor, "R2", 5, 1, 0},
}

// bridge is an unbalanced Wheatstone bridge: three chords, four vertices.
var bridge = []part{
	{circuit.VoltageSource, "V1", 12, 0, 1},
	{circuit.Resistor, "R1", 100, 1, 2},
	{circuit.Resistor, "R2", 200, 1, 3},
	{circuit.Resistor, "R3", 300, 2, 0},
	{circuit.Resistor, "R4", 400, 3, 0},
	{circuit.Resistor, "R5", 50, 2, 3},
}

func current(t *testing.T, c *circuit.Circuit, label string) float64 {
	t.Helper()
	i, err := c.Current(label)
	require.NoError(t, err)

	return i
}

func voltage(t *testing.T, c *circuit.Circuit, label string) float64 {
	t.Helper()
	v, err := c.Voltage(label)
	require.NoError(t, err)

	return v
}
