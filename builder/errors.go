// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Generators attach context with %w ("Path: n=1 < min=2: ...").
//   • Runtime code never panics; option constructors may.
//
// Priority when several checks fail: size first, then probability, then
// the random source.

package builder

import "errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is
// below the minimum of the requested generator.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic generator (RandomSparse
// with 0<p<1, or any generator under WithShuffle) ran without WithSeed or
// WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrTooLarge indicates that the generated matrix would not be addressable
// by the chosen index type.
var ErrTooLarge = errors.New("builder: size exceeds index type")
