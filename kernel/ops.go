// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"
	"strings"
)

// Op is a binary message operator.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpCopyLhs // use_lhs: ignore rhs
	OpCopyRhs // use_rhs: ignore lhs
	OpDot     // inner product over the last feature axis (SDDMM only)
)

var opNames = map[Op]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div",
	OpCopyLhs: "use_lhs", OpCopyRhs: "use_rhs", OpDot: "dot",
}

// String returns the canonical operator name.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}

	return fmt.Sprintf("op(%d)", uint8(op))
}

// ParseOp resolves an operator name. Accepted: add, sub, mul, div, dot,
// use_lhs (copy_lhs, use-lhs), use_rhs (copy_rhs, use-rhs).
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return OpAdd, nil
	case "sub":
		return OpSub, nil
	case "mul":
		return OpMul, nil
	case "div":
		return OpDiv, nil
	case "dot":
		return OpDot, nil
	case "use_lhs", "copy_lhs", "use-lhs":
		return OpCopyLhs, nil
	case "use_rhs", "copy_rhs", "use-rhs":
		return OpCopyRhs, nil
	default:
		return 0, fmt.Errorf("ParseOp(%q): %w", s, ErrUnsupported)
	}
}

// UsesLhs reports whether op reads its left operand.
func (op Op) UsesLhs() bool { return op != OpCopyRhs }

// UsesRhs reports whether op reads its right operand.
func (op Op) UsesRhs() bool { return op != OpCopyLhs }

func (op Op) valid() bool {
	_, ok := opNames[op]

	return ok
}

// Reducer is an aggregation over the entries incident to one output row.
type Reducer uint8

const (
	ReduceSum Reducer = iota + 1
	ReduceMax
	ReduceMin
	ReduceMean
	ReduceProd
	ReduceNone // no aggregation: one output row per entry id
)

var reducerNames = map[Reducer]string{
	ReduceSum: "sum", ReduceMax: "max", ReduceMin: "min",
	ReduceMean: "mean", ReduceProd: "prod", ReduceNone: "none",
}

// String returns the canonical reducer name.
func (r Reducer) String() string {
	if s, ok := reducerNames[r]; ok {
		return s
	}

	return fmt.Sprintf("reducer(%d)", uint8(r))
}

// ParseReducer resolves a reducer name: sum, max, min, mean, prod, none.
func ParseReducer(s string) (Reducer, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for r, name := range reducerNames {
		if name == want {
			return r, nil
		}
	}

	return 0, fmt.Errorf("ParseReducer(%q): %w", s, ErrUnsupported)
}

func (r Reducer) valid() bool {
	_, ok := reducerNames[r]

	return ok
}

// Target binds a feature buffer to one role of an entry (row, col, id):
// source = col, destination = row, edge = id.
type Target uint8

const (
	TargetSrc Target = iota + 1
	TargetDst
	TargetEdge
)

// String returns the canonical target name.
func (t Target) String() string {
	switch t {
	case TargetSrc:
		return "src"
	case TargetDst:
		return "dst"
	case TargetEdge:
		return "edge"
	default:
		return fmt.Sprintf("target(%d)", uint8(t))
	}
}

// ParseTarget resolves src|u|source, dst|v|destination, edge|e.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "src", "u", "source":
		return TargetSrc, nil
	case "dst", "v", "destination":
		return TargetDst, nil
	case "edge", "e":
		return TargetEdge, nil
	default:
		return 0, fmt.Errorf("ParseTarget(%q): %w", s, ErrUnsupported)
	}
}

// Float is the set of compute widths. Float16 buffers are computed in
// float32.
type Float interface {
	float32 | float64
}

// binary applies a pointwise operator. OpDot multiplies; the caller sums.
func binary[T Float](op Op, a, b T) T {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul, OpDot:
		return a * b
	case OpDiv:
		return a / b
	case OpCopyLhs:
		return a
	default:
		return b
	}
}

// identity returns the starting accumulator of r.
func identity[T Float](r Reducer) T {
	switch r {
	case ReduceMax:
		return T(math.Inf(-1))
	case ReduceMin:
		return T(math.Inf(1))
	case ReduceProd:
		return 1
	default:
		return 0
	}
}
