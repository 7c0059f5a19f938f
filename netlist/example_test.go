// SPDX-License-Identifier: MIT
package netlist_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dcmesh/netlist"
)

// ExampleDecode builds and solves a divider described in YAML.
func ExampleDecode() {
	doc := `
components:
  - {kind: vsource, label: V1, value: 10, from: 0, to: 1}
  - {kind: resistor, value: 10, from: 1, to: 2}
  - {kind: resistor, value: 10, from: 2, to: 0}
`
	n, err := netlist.Decode(strings.NewReader(doc))
	if err != nil {
		fmt.Println(err)
		return
	}
	c, _ := n.Build()
	_ = c.Initialize()
	fmt.Print(c)
	// Output:
	// V1 V: 10 I: 0.5
	// R1 V: 5 I: 0.5
	// R2 V: 5 I: 0.5
}
