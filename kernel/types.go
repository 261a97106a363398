// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"strings"
)

// Type selects the kernel family.
type Type uint8

const (
	// TypeAnisotropic is the fixed-bandwidth Gaussian kernel.
	TypeAnisotropic Type = iota + 1
	// TypeAdaptive uses a per-point k-th-neighbour bandwidth.
	TypeAdaptive
)

// String returns the canonical name accepted by ParseType.
func (t Type) String() string {
	switch t {
	case TypeAnisotropic:
		return "anisotropic"
	case TypeAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("kernel.Type(%d)", uint8(t))
	}
}

// ParseType maps a name to a Type. Accepted: "anisotropic", "adaptive",
// "adaptive anisotropic", "adaptive_anisotropic" (case-insensitive).
// Errors: *UnsupportedKernelTypeError.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "anisotropic":
		return TypeAnisotropic, nil
	case "adaptive", "adaptive anisotropic", "adaptive_anisotropic", "adaptive-anisotropic":
		return TypeAdaptive, nil
	}

	return 0, &UnsupportedKernelTypeError{Name: name}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t != TypeAnisotropic && t != TypeAdaptive {
		return nil, &UnsupportedKernelTypeError{Name: t.String()}
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so a Type can be read
// straight from YAML or flag values.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v

	return nil
}
