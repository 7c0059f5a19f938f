// SPDX-License-Identifier: MIT
package netlist_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/katalvlaran/dcmesh/circuit"
	"github.com/katalvlaran/dcmesh/matrix"
	"github.com/katalvlaran/dcmesh/netlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seriesYAML = `
ground: 0
components:
  - {kind: vsource, label: V1, value: 10, from: 0, to: 1}
  - {kind: R, label: R1, value: 10, from: 1, to: 2}
  - {kind: resistor, value: 10, from: 2, to: 0}
`

func TestDecodeBuildSolve(t *testing.T) {
	n, err := netlist.Decode(strings.NewReader(seriesYAML))
	require.NoError(t, err)
	require.Len(t, n.Components, 3)
	require.Equal(t, circuit.Resistor, n.Components[1].Kind)

	c, err := n.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"R1", "R2", "V1"}, c.Labels())
	require.NoError(t, c.Initialize())

	i, err := c.Current("R2")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, i, 1e-9)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"unknown field":  "ground: 0\nwires: []\n",
		"unknown kind":   "components:\n  - {kind: capacitor, value: 1, from: 0, to: 1}\n",
		"negative vtx":   "components:\n  - {kind: r, value: 1, from: -1, to: 1}\n",
		"negative gnd":   "ground: -2\n",
		"huge gnd":       "ground: 65536\n",
		"huge vtx":       "components:\n  - {kind: r, value: 1, from: 0, to: 4194304}\n",
		"duplicate":      "components:\n  - {kind: r, label: R1, value: 1, from: 0, to: 1}\n  - {kind: r, label: R1, value: 1, from: 1, to: 0}\n",
		"bad tolerance":  "solver: {tolerance: -1}\n",
		"bad iterations": "solver: {max_iterations: -5}\n",
		"bad pivot eps":  "solver: {pivot_epsilon: .inf}\n",
		"not yaml":       "components: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := netlist.Decode(strings.NewReader(doc))
			require.ErrorIs(t, err, netlist.ErrInvalidNetlist)
		})
	}
}

func TestBuildGroundOutOfRange(t *testing.T) {
	n, err := netlist.Decode(strings.NewReader(seriesYAML))
	require.NoError(t, err)
	n.Ground = 9

	_, err = n.Build()
	require.ErrorIs(t, err, netlist.ErrInvalidNetlist)
	require.ErrorIs(t, err, circuit.ErrOutOfRange)
}

func TestBuildSelfLoop(t *testing.T) {
	n := &netlist.Netlist{Components: []netlist.Component{{Kind: circuit.Resistor, Value: 1, From: 2, To: 2}}}
	_, err := n.Build()
	require.ErrorIs(t, err, circuit.ErrSelfLoop)
}

func TestSolverOverrides(t *testing.T) {
	doc := `
solver:
  strict_pivot: true
components:
  - {kind: v, value: 10, from: 0, to: 1}
  - {kind: v, value: 10, from: 0, to: 1}
`
	n, err := netlist.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.NotNil(t, n.Solver)
	require.Len(t, n.Solver.Options(), 1)

	c, err := n.Build()
	require.NoError(t, err)
	require.ErrorIs(t, c.Initialize(), matrix.ErrSingular)
}

func TestEncodeRoundTrip(t *testing.T) {
	src := circuit.New()
	require.NoError(t, src.AddComponent(circuit.VoltageSource, "V1", 12, 0, 1))
	require.NoError(t, src.AddComponent(circuit.Resistor, "R1", 4, 1, 2))
	require.NoError(t, src.AddComponent(circuit.Resistor, "R2", 8, 2, 0))
	require.NoError(t, src.SetGround(2))

	var buf bytes.Buffer
	require.NoError(t, netlist.Encode(&buf, netlist.FromCircuit(src)))
	require.Contains(t, buf.String(), "kind: vsource")
	require.Contains(t, buf.String(), "ground: 2")

	n, err := netlist.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, netlist.FromCircuit(src), n)

	dst, err := n.Build()
	require.NoError(t, err)
	require.Equal(t, src.Records(), dst.Records())
	require.Equal(t, 2, dst.Ground())
}

func TestBuildEmpty(t *testing.T) {
	c, err := (&netlist.Netlist{}).Build()
	require.NoError(t, err)
	require.Zero(t, c.Len())
}

func TestBuildVertexCap(t *testing.T) {
	n := &netlist.Netlist{Components: []netlist.Component{{Kind: circuit.Resistor, Value: 1, From: 0, To: circuit.MaxVertex}}}
	_, err := n.Build()
	require.ErrorIs(t, err, netlist.ErrInvalidNetlist)

	n.Components[0].To = circuit.MaxVertex - 1
	c, err := n.Build()
	require.NoError(t, err)
	require.Equal(t, circuit.MaxVertex, c.VertexCount())
}

func TestAutoLabelsSkipExplicitLabels(t *testing.T) {
	doc := `
components:
  - {kind: resistor, value: 1, from: 0, to: 1}
  - {kind: resistor, label: R1, value: 2, from: 1, to: 0}
  - {kind: resistor, value: 3, from: 1, to: 0}
`
	n, err := netlist.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	c, err := n.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"R1", "R2", "R3"}, c.Labels())

	r1, err := c.Component("R1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, r1.Value)
	r2, err := c.Component("R2")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r2.Value)
}
