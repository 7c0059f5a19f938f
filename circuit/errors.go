// SPDX-License-Identifier: MIT

package circuit

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dcmesh/topology"
)

var (
	// ErrNotFound indicates that no component has the given label.
	ErrNotFound = errors.New("circuit: component not found")

	// ErrDuplicateLabel indicates an add or rename onto an existing label.
	ErrDuplicateLabel = errors.New("circuit: duplicate label")

	// ErrInvalidKind indicates an unknown component kind.
	ErrInvalidKind = errors.New("circuit: invalid component kind")

	// ErrOutOfRange indicates a vertex index outside the circuit.
	// It is the topology sentinel, so errors.Is matches either name.
	ErrOutOfRange = topology.ErrOutOfRange

	// ErrSelfLoop indicates a component whose two terminals are the same vertex.
	ErrSelfLoop = errors.New("circuit: component terminals must differ")

	// ErrInvalidValue indicates a NaN or infinite resistance or voltage.
	ErrInvalidValue = errors.New("circuit: value must be finite")

	// ErrEmptyCircuit indicates Initialize on a circuit without components.
	ErrEmptyCircuit = errors.New("circuit: no components")

	// ErrDisconnected indicates a network that is not a single connected piece.
	ErrDisconnected = errors.New("circuit: network is disconnected")

	// ErrNotInitialized indicates Solve or a potential query before Initialize.
	ErrNotInitialized = errors.New("circuit: not initialized")

	// ErrCorruptRecord indicates a truncated or malformed persisted record.
	ErrCorruptRecord = errors.New("circuit: corrupt record")
)

// circuitErrorf tags err with an operation and its subject (label or index).
func circuitErrorf(op string, subject any, err error) error {
	return fmt.Errorf("circuit.%s(%v): %w", op, subject, err)
}
