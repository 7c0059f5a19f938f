// SPDX-License-Identifier: MIT

package netlist

import "errors"

// ErrInvalidNetlist is returned for documents that cannot describe a circuit.
var ErrInvalidNetlist = errors.New("netlist: invalid netlist")
