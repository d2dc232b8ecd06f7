// SPDX-License-Identifier: MIT

// Package sparse: functional configuration shared by constructors,
// conversions, sorters and queries.
//
// Contract:
//   - Option constructors validate their argument and panic on nonsensical
//     values (programmer error). Operations themselves never panic on user
//     input.
//   - Zero options reproduce the documented defaults below.
//   - Options that do not apply to an operation are ignored by it.
package sparse

import (
	"context"
	"log/slog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultHashThreshold is the number of broadcast query pairs at which
	// GetEntriesAndIndices switches from nested linear scans to a hashed
	// multimap. It is a performance knob only; both paths return the same
	// multiset of matches.
	DefaultHashThreshold = 200

	// DefaultWorkers selects runtime.GOMAXPROCS(0) workers.
	DefaultWorkers = 0
)

const (
	panicWorkersNegative  = "sparse: WithWorkers: n must be >= 0"
	panicThresholdInvalid = "sparse: WithHashThreshold: n must be >= 1"
	panicNilContext       = "sparse: WithContext(nil)"
	panicNilLogger        = "sparse: WithLogger(nil)"
)

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// Options is the resolved configuration of one call. Fields are unexported;
// public entry points accept ...Option.
type Options struct {
	workers       int
	hashThreshold int
	validate      bool
	ctx           context.Context
	logger        *slog.Logger
}

// WithWorkers fixes the number of parallel workers. 0 means GOMAXPROCS.
// Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersNegative)
	}

	return func(o *Options) { o.workers = n }
}

// WithHashThreshold overrides DefaultHashThreshold. A threshold of 1 always
// takes the hashed path. Panics if n < 1.
func WithHashThreshold(n int) Option {
	if n < 1 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.hashThreshold = n }
}

// WithValidation makes NewCSR and NewCOO run the full O(nnz) structural
// checks (index ranges, indptr monotonicity, non-negative ids) on top of
// the O(1) shape checks they always perform.
func WithValidation() Option {
	return func(o *Options) { o.validate = true }
}

// WithContext sets the parent context for tracing spans opened by
// conversions. It carries no cancellation semantics.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic(panicNilContext)
	}

	return func(o *Options) { o.ctx = ctx }
}

// WithLogger routes debug records of this package to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// gatherOptions resolves opts on top of the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		workers:       DefaultWorkers,
		hashThreshold: DefaultHashThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
