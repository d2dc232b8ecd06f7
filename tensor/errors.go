// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// Every message is prefixed with "tensor: ..." for grep-ability. Callers
// branch with errors.Is; call sites add context with %w.

package tensor

import "errors"

var (
	// ErrBadShape is returned when a shape has a negative dimension or does
	// not match the length of the bound data.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrDTypeMismatch indicates that a typed accessor was used on a tensor
	// of a different element type, or that paired tensors disagree on dtype.
	ErrDTypeMismatch = errors.New("tensor: dtype mismatch")

	// ErrUnsupportedDType is returned for dtypes outside the supported set
	// or for unknown dtype names.
	ErrUnsupportedDType = errors.New("tensor: unsupported dtype")

	// ErrNilTensor indicates a nil *Tensor receiver or argument.
	ErrNilTensor = errors.New("tensor: nil tensor")
)
