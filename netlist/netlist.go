// SPDX-License-Identifier: MIT

package netlist

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/dcmesh/circuit"
	"gopkg.in/yaml.v3"
)

// Netlist is the document form of a circuit.
type Netlist struct {
	Ground     int         `yaml:"ground"`
	Solver     *Solver     `yaml:"solver,omitempty"`
	Components []Component `yaml:"components"`
}

// Solver holds per-netlist overrides of the circuit solver options.
// Nil fields keep whatever the caller configured.
type Solver struct {
	Tolerance     *float64 `yaml:"tolerance,omitempty"`
	MaxIterations *int     `yaml:"max_iterations,omitempty"`
	PivotEpsilon  *float64 `yaml:"pivot_epsilon,omitempty"`
	StrictPivot   *bool    `yaml:"strict_pivot,omitempty"`
}

// Component is one entry of the component list.
type Component struct {
	Kind  circuit.Kind `yaml:"kind"`
	Label string       `yaml:"label,omitempty"`
	Value float64      `yaml:"value"`
	From  int          `yaml:"from"`
	To    int          `yaml:"to"`
}

// Decode reads a single YAML document and validates it. Unknown fields are
// rejected.
func Decode(r io.Reader) (*Netlist, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var n Netlist
	if err := dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidNetlist)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetlist, err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	return &n, nil
}

// Encode writes n as YAML with two-space indentation.
func Encode(w io.Writer, n *Netlist) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode netlist: %w", err)
	}

	return enc.Close()
}

// FromCircuit captures the components and ground of c. Solver overrides
// are not part of a circuit and stay nil.
func FromCircuit(c *circuit.Circuit) *Netlist {
	comps := c.Components()
	n := &Netlist{Ground: c.Ground(), Components: make([]Component, len(comps))}
	for i, comp := range comps {
		n.Components[i] = Component{
			Kind:  comp.Kind,
			Label: comp.Label,
			Value: comp.Value,
			From:  comp.From,
			To:    comp.To,
		}
	}

	return n
}

// Validate checks the document without building anything.
func (n *Netlist) Validate() error {
	if n.Ground < 0 || n.Ground >= circuit.MaxVertex {
		return fmt.Errorf("%w: ground %d outside [0, %d)", ErrInvalidNetlist, n.Ground, circuit.MaxVertex)
	}
	if n.Solver != nil {
		if err := n.Solver.validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]int, len(n.Components))
	for i, c := range n.Components {
		if !c.Kind.Valid() {
			return fmt.Errorf("%w: component %d: %w", ErrInvalidNetlist, i, circuit.ErrInvalidKind)
		}
		if c.From < 0 || c.To < 0 || c.From >= circuit.MaxVertex || c.To >= circuit.MaxVertex {
			return fmt.Errorf("%w: component %d: vertex %d→%d outside [0, %d): %w",
				ErrInvalidNetlist, i, c.From, c.To, circuit.MaxVertex, circuit.ErrOutOfRange)
		}
		if c.Label == "" {
			continue
		}
		if j, dup := seen[c.Label]; dup {
			return fmt.Errorf("%w: components %d and %d share label %q: %w", ErrInvalidNetlist, j, i, c.Label, circuit.ErrDuplicateLabel)
		}
		seen[c.Label] = i
	}

	return nil
}

func (s *Solver) validate() error {
	if t := s.Tolerance; t != nil && (math.IsNaN(*t) || math.IsInf(*t, 0) || *t < 0) {
		return fmt.Errorf("%w: tolerance %g", ErrInvalidNetlist, *t)
	}
	if m := s.MaxIterations; m != nil && *m < 0 {
		return fmt.Errorf("%w: max_iterations %d", ErrInvalidNetlist, *m)
	}
	if p := s.PivotEpsilon; p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0) {
		return fmt.Errorf("%w: pivot_epsilon %g", ErrInvalidNetlist, *p)
	}

	return nil
}

// Options converts the overrides to circuit options. Call validate first.
func (s *Solver) Options() []circuit.Option {
	if s == nil {
		return nil
	}
	var opts []circuit.Option
	if s.Tolerance != nil {
		opts = append(opts, circuit.WithTolerance(*s.Tolerance))
	}
	if s.MaxIterations != nil {
		opts = append(opts, circuit.WithMaxIterations(*s.MaxIterations))
	}
	if s.PivotEpsilon != nil {
		opts = append(opts, circuit.WithPivotEpsilon(*s.PivotEpsilon))
	}
	if s.StrictPivot != nil && *s.StrictPivot {
		opts = append(opts, circuit.WithStrictPivot())
	}

	return opts
}

// Build assembles a new circuit from n. The caller's options apply first,
// then the netlist's own solver overrides. The circuit is left in Editing.
func (n *Netlist) Build(opts ...circuit.Option) (*circuit.Circuit, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	all := append(append([]circuit.Option(nil), opts...), n.Solver.Options()...)
	c := circuit.New(all...)

	// explicit labels win over generated ones wherever they appear
	reserved := make(map[string]bool, len(n.Components))
	for _, comp := range n.Components {
		if comp.Label != "" {
			reserved[comp.Label] = true
		}
	}

	var err error
	for i, comp := range n.Components {
		label := comp.Label
		for label == "" || (comp.Label == "" && reserved[label]) {
			if label, err = c.NextLabel(comp.Kind); err != nil {
				return nil, fmt.Errorf("%w: component %d: %w", ErrInvalidNetlist, i, err)
			}
		}
		if err = c.AddComponent(comp.Kind, label, comp.Value, comp.From, comp.To); err != nil {
			return nil, fmt.Errorf("%w: component %d: %w", ErrInvalidNetlist, i, err)
		}
	}
	if len(n.Components) > 0 || n.Ground != 0 {
		if err = c.SetGround(n.Ground); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidNetlist, err)
		}
	}

	return c, nil
}
