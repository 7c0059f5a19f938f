// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a vertex or edge index outside the matrix.
	ErrOutOfRange = errors.New("topology: index out of range")

	// ErrNotIncident indicates that an edge does not touch the given vertex.
	ErrNotIncident = errors.New("topology: edge not incident to vertex")

	// ErrDetachedEdge indicates an edge column with no endpoints (self-loop or
	// a column never connected in a spanning tree).
	ErrDetachedEdge = errors.New("topology: edge has no endpoints")
)

// vertexErrorf tags err with the method name and vertex index.
func vertexErrorf(method string, v int, err error) error {
	return fmt.Errorf("topology.%s(v=%d): %w", method, v, err)
}

// edgeErrorf tags err with the method name and edge index.
func edgeErrorf(method string, e int, err error) error {
	return fmt.Errorf("topology.%s(e=%d): %w", method, e, err)
}
