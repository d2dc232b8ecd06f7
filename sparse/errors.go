// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// Every message is prefixed with "sparse: ..." so it greps cleanly in logs.
// Public operations return these sentinels wrapped with a method tag, e.g.
// "CSR.Get(3,4): sparse: index out of range"; callers match with errors.Is.
//
// Panics are reserved for internal invariant violations (a conversion whose
// prefix-sum total disagrees with nnz) and for nonsensical option values.

package sparse

import "errors"

var (
	// ErrBadShape is returned when a declared dimension is negative, a buffer
	// length disagrees with the declared shape, or indptr endpoints are wrong.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a row, column, tag or id value outside its
	// declared bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrShapeMismatch indicates that paired argument arrays cannot be
	// broadcast against each other, or a remap table has the wrong length.
	ErrShapeMismatch = errors.New("sparse: shape mismatch")

	// ErrNilMatrix indicates a nil *CSR or *COO receiver or argument.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrNotMonotone is returned by validation when indptr decreases.
	ErrNotMonotone = errors.New("sparse: indptr is not non-decreasing")
)
