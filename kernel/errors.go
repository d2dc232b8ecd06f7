// SPDX-License-Identifier: MIT
// Package kernel: sentinel error set.
// Every message is prefixed with "kernel: ..."; entry points wrap them with
// the kernel name and callers match with errors.Is.

package kernel

import "errors"

var (
	// ErrUnsupported names an operator, reducer, target, dtype or
	// combination the dispatcher does not implement.
	ErrUnsupported = errors.New("kernel: unsupported operation")

	// ErrShapeMismatch reports feature shapes that cannot be broadcast or
	// buffers whose row count disagrees with the sparse structure.
	ErrShapeMismatch = errors.New("kernel: shape mismatch")

	// ErrOutOfRange reports a column, entry id, segment offset, scatter
	// index or relation slot outside its buffer.
	ErrOutOfRange = errors.New("kernel: index out of range")

	// ErrDTypeMismatch reports paired buffers of different dtypes.
	ErrDTypeMismatch = errors.New("kernel: dtype mismatch")

	// ErrMissingOperand reports a nil buffer the operator needs.
	ErrMissingOperand = errors.New("kernel: missing operand")
)
