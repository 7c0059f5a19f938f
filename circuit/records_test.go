// SPDX-License-Identifier: MIT
package circuit_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/katalvlaran/dcmesh/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordLayout pins the byte layout of one record.
func TestRecordLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, circuit.WriteRecord(&buf, circuit.Record{
		Kind: circuit.Resistor, Label: "R1", Value: 10, From: 1, To: 2,
	}))
	want := []byte{
		0, 0, 0, 0, // kind
		2, 0, 0, 0, // label length
		'R', '1',
		0, 0, 0, 0, 0, 0, 0x24, 0x40, // 10.0
		1, 0, 0, 0,
		2, 0, 0, 0,
	}
	require.Equal(t, want, buf.Bytes())

	rec, err := circuit.ReadRecord(&buf)
	require.NoError(t, err)
	require.Equal(t, circuit.Record{Kind: circuit.Resistor, Label: "R1", Value: 10, From: 1, To: 2}, rec)

	_, err = circuit.ReadRecord(&buf)
	require.Equal(t, io.EOF, err)
}

func TestReadRecordCorrupt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, circuit.WriteRecord(&buf, circuit.Record{Kind: circuit.VoltageSource, Label: "V1", Value: 5, To: 1}))
	full := buf.Bytes()

	for _, n := range []int{2, 6, 8, 9, 10, 15, len(full) - 1} {
		_, err := circuit.ReadRecord(bytes.NewReader(full[:n]))
		require.ErrorIs(t, err, circuit.ErrCorruptRecord, "cut at %d", n)
	}

	huge := []byte{0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}
	_, err := circuit.ReadRecord(bytes.NewReader(huge))
	require.ErrorIs(t, err, circuit.ErrCorruptRecord)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := assemble(t, bridge)
	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := circuit.New()
	require.NoError(t, dst.Load(&buf))
	require.Equal(t, src.Records(), dst.Records())
	require.Equal(t, src.VertexCount(), dst.VertexCount())

	require.NoError(t, src.Initialize())
	require.NoError(t, dst.Initialize())
	for _, comp := range src.Components() {
		assert.InDelta(t, comp.Current, current(t, dst, comp.Label), eps, comp.Label)
	}
}

func TestLoadIsAllOrNothing(t *testing.T) {
	var buf bytes.Buffer
	for _, r := range []circuit.Record{
		{Kind: circuit.Resistor, Label: "R2", Value: 1, From: 0, To: 1},
		{Kind: circuit.Resistor, Label: "R1", Value: 1, From: 1, To: 2}, // clashes
	} {
		require.NoError(t, circuit.WriteRecord(&buf, r))
	}

	c := assemble(t, []part{{circuit.Resistor, "R1", 10, 0, 1}})
	require.ErrorIs(t, c.Load(&buf), circuit.ErrDuplicateLabel)
	require.Equal(t, []string{"R1"}, c.Labels())
	require.Equal(t, 2, c.VertexCount())

	truncated := []byte{0, 0, 0, 0, 2, 0, 0, 0, 'R'}
	require.ErrorIs(t, c.Load(bytes.NewReader(truncated)), circuit.ErrCorruptRecord)
	require.Equal(t, 1, c.Len())
}

// TestLoadCutOnFieldBoundary cuts a two-record stream right after the
// second header and right after the second label.
func TestLoadCutOnFieldBoundary(t *testing.T) {
	var buf bytes.Buffer
	for _, r := range []circuit.Record{
		{Kind: circuit.Resistor, Label: "R1", Value: 1, From: 0, To: 1},
		{Kind: circuit.Resistor, Label: "R2", Value: 2, From: 1, To: 0},
	} {
		require.NoError(t, circuit.WriteRecord(&buf, r))
	}
	full := buf.Bytes()
	require.Len(t, full, 52)

	for _, n := range []int{26 + 8, 26 + 10} {
		c := circuit.New()
		err := c.Load(bytes.NewReader(full[:n]))
		require.ErrorIs(t, err, circuit.ErrCorruptRecord, "cut at %d", n)
		require.Zero(t, c.Len(), "cut at %d", n)
	}

	c := circuit.New()
	require.NoError(t, c.Load(bytes.NewReader(full)))
	require.Equal(t, []string{"R1", "R2"}, c.Labels())
}

func TestLoadAppends(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, circuit.WriteRecord(&buf, circuit.Record{Kind: circuit.Resistor, Label: "R2", Value: 10, From: 2, To: 0}))

	c := assemble(t, series[:2])
	require.NoError(t, c.Load(&buf))
	require.NoError(t, c.Initialize())
	assert.InDelta(t, 0.5, current(t, c, "R2"), eps)

	require.NoError(t, circuit.New().Load(bytes.NewReader(nil)))
}

func TestAddRecordRejectsHugeIndex(t *testing.T) {
	for _, rec := range []circuit.Record{
		{Kind: circuit.Resistor, Label: "R1", Value: 1, From: 1 << 31, To: 0},
		{Kind: circuit.Resistor, Label: "R1", Value: 1, From: 0, To: 1 << 22},
		{Kind: circuit.Resistor, Label: "R1", Value: 1, From: circuit.MaxVertex, To: 0},
	} {
		c := circuit.New()
		require.ErrorIs(t, c.AddRecord(rec), circuit.ErrCorruptRecord)
		require.Zero(t, c.VertexCount())
	}
}

func TestAddRecordIndexJustUnderCap(t *testing.T) {
	c := circuit.New()
	require.NoError(t, c.AddRecord(circuit.Record{Kind: circuit.Resistor, Label: "R1", Value: 1, From: 0, To: circuit.MaxVertex - 1}))
	require.Equal(t, circuit.MaxVertex, c.VertexCount())
}

func TestLoadRejectsHugeIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, circuit.WriteRecord(&buf, circuit.Record{Kind: circuit.Resistor, Label: "R1", Value: 1, To: 1 << 22}))

	c := circuit.New()
	require.ErrorIs(t, c.Load(&buf), circuit.ErrCorruptRecord)
	require.Zero(t, c.VertexCount())
}
