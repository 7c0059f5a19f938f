// SPDX-License-Identifier: MIT

package circuit

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// maxLabelLen bounds the label length accepted from a stream, so a corrupt
// length prefix cannot trigger a huge allocation.
const maxLabelLen = 1 << 16

// MaxVertex is the exclusive upper bound on vertex indices read from records
// or netlists. The incidence matrix is dense, so an unchecked index would
// allocate that many rows.
const MaxVertex = 1 << 16

// Record is the persisted form of one component.
type Record struct {
	Kind  Kind
	Label string
	Value float64
	From  uint32
	To    uint32
}

// recordHead and recordTail are the fixed-size parts around the label bytes.
type recordHead struct {
	Kind Kind
	Len  uint32
}

type recordTail struct {
	Value    float64
	From, To uint32
}

// WriteRecord encodes r in little-endian order:
// int32 kind, uint32 len, label bytes, float64 value, uint32 from, uint32 to.
func WriteRecord(w io.Writer, r Record) error {
	if len(r.Label) > maxLabelLen {
		return fmt.Errorf("WriteRecord: label of %d bytes exceeds %d: %w", len(r.Label), maxLabelLen, ErrCorruptRecord)
	}
	if err := binary.Write(w, binary.LittleEndian, recordHead{Kind: r.Kind, Len: uint32(len(r.Label))}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, r.Label); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, recordTail{Value: r.Value, From: r.From, To: r.To})
}

// ReadRecord decodes one record. It returns io.EOF, unwrapped, when the
// stream ends cleanly before a record; a partial record is ErrCorruptRecord.
func ReadRecord(r io.Reader) (Record, error) {
	var head recordHead
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, corrupt("header", err)
	}
	if head.Len > maxLabelLen {
		return Record{}, corrupt("label length", fmt.Errorf("%d > %d", head.Len, maxLabelLen))
	}
	label := make([]byte, head.Len)
	if _, err := io.ReadFull(r, label); err != nil {
		return Record{}, corrupt("label", unexpected(err))
	}
	var tail recordTail
	if err := binary.Read(r, binary.LittleEndian, &tail); err != nil {
		return Record{}, corrupt("body", unexpected(err))
	}

	return Record{Kind: head.Kind, Label: string(label), Value: tail.Value, From: tail.From, To: tail.To}, nil
}

// unexpected maps io.EOF after a complete header to io.ErrUnexpectedEOF, so
// a stream cut on a field boundary never reads as a clean end.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}

func corrupt(part string, err error) error {
	return fmt.Errorf("ReadRecord %s: %w: %w", part, ErrCorruptRecord, err)
}

// Records returns the persisted form of every component in insertion order.
func (c *Circuit) Records() []Record {
	comps := c.Components()
	out := make([]Record, len(comps))
	for i, comp := range comps {
		out[i] = Record{
			Kind:  comp.Kind,
			Label: comp.Label,
			Value: comp.Value,
			From:  uint32(comp.From),
			To:    uint32(comp.To),
		}
	}

	return out
}

// Save writes every component as a record, with no header or count.
func (c *Circuit) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range c.Records() {
		if err := WriteRecord(bw, r); err != nil {
			return circuitErrorf("Save", r.Label, err)
		}
	}

	return bw.Flush()
}

// Load reads records until end of stream and adds each one as a component.
// Either every record is applied or the circuit is left untouched.
//
// Errors: ErrCorruptRecord, or any AddComponent error for a record.
func (c *Circuit) Load(r io.Reader) error {
	work := c.clone()
	br := bufio.NewReader(r)
	n := 0
	for {
		rec, err := ReadRecord(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return circuitErrorf("Load", n, err)
		}
		if err = work.AddRecord(rec); err != nil {
			return circuitErrorf("Load", n, err)
		}
		n++
	}
	*c = *work
	c.log.Debug("records loaded", slog.Int("count", n))

	return nil
}

// AddRecord adds the component described by rec.
//
// Errors: ErrCorruptRecord for a vertex index >= MaxVertex, or any
// AddComponent error.
func (c *Circuit) AddRecord(rec Record) error {
	if rec.From >= MaxVertex || rec.To >= MaxVertex {
		return circuitErrorf("AddRecord", rec.Label,
			fmt.Errorf("vertex %d→%d beyond %d: %w", rec.From, rec.To, MaxVertex, ErrCorruptRecord))
	}

	return c.AddComponent(rec.Kind, rec.Label, rec.Value, int(rec.From), int(rec.To))
}
