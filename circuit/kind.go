// SPDX-License-Identifier: MIT

package circuit

import (
	"fmt"
	"strings"
)

// Kind tags a component variant. The numeric values are the persisted tags.
type Kind int32

const (
	// Resistor is a linear resistor; its value is the resistance in ohms.
	Resistor Kind = 0
	// VoltageSource is an ideal DC source; its value is the voltage in volts.
	VoltageSource Kind = 1
)

// Label prefixes used by NextLabel.
const (
	resistorPrefix = "R"
	sourcePrefix   = "V"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k == Resistor || k == VoltageSource }

// String returns "resistor" or "vsource", or "Kind(n)" for unknown values.
func (k Kind) String() string {
	switch k {
	case Resistor:
		return "resistor"
	case VoltageSource:
		return "vsource"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

// prefix returns the auto-label prefix of k.
func (k Kind) prefix() string {
	if k == VoltageSource {
		return sourcePrefix
	}

	return resistorPrefix
}

// ParseKind accepts the String form and a few common aliases, case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resistor", "r":
		return Resistor, nil
	case "vsource", "source", "vcc", "v":
		return VoltageSource, nil
	default:
		return 0, fmt.Errorf("ParseKind(%q): %w", s, ErrInvalidKind)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("MarshalText(%d): %w", int32(k), ErrInvalidKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}
