// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"strings"
)

// DType identifies the element type of a Tensor.
type DType uint8

const (
	// Invalid is the zero DType; no tensor carries it.
	Invalid DType = iota
	// Float16 is IEEE 754 binary16, stored as github.com/x448/float16.Float16.
	Float16
	// Float32 is IEEE 754 binary32.
	Float32
	// Float64 is IEEE 754 binary64.
	Float64
	// Int32 is a signed 32-bit integer.
	Int32
	// Int64 is a signed 64-bit integer.
	Int64
)

var dtypeNames = [...]string{
	Invalid: "invalid",
	Float16: "float16",
	Float32: "float32",
	Float64: "float64",
	Int32:   "int32",
	Int64:   "int64",
}

// String returns the canonical lower-case dtype name.
func (d DType) String() string {
	if int(d) < len(dtypeNames) {
		return dtypeNames[d]
	}

	return fmt.Sprintf("dtype(%d)", uint8(d))
}

// Bits returns the element bit width, or 0 for Invalid.
func (d DType) Bits() int {
	switch d {
	case Float16:
		return 16
	case Float32, Int32:
		return 32
	case Float64, Int64:
		return 64
	default:
		return 0
	}
}

// IsFloat reports whether d is one of the floating-point dtypes.
func (d DType) IsFloat() bool {
	return d == Float16 || d == Float32 || d == Float64
}

// ParseDType resolves a dtype name ("float32", "f32", "half", "int64", ...).
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float16", "f16", "half":
		return Float16, nil
	case "float32", "f32", "float":
		return Float32, nil
	case "float64", "f64", "double":
		return Float64, nil
	case "int32", "i32":
		return Int32, nil
	case "int64", "i64":
		return Int64, nil
	default:
		return Invalid, fmt.Errorf("ParseDType(%q): %w", s, ErrUnsupportedDType)
	}
}
