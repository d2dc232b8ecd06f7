// SPDX-License-Identifier: MIT

package kernel

import "log/slog"

const (
	panicWorkersNegative = "kernel: WithWorkers: n must be >= 0"
	panicNilLogger       = "kernel: WithLogger(nil)"
)

// Option configures one kernel call.
type Option func(*Options)

// Options is the resolved configuration of one kernel call.
type Options struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers fixes the number of parallel workers; 0 means GOMAXPROCS.
// Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersNegative)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger routes the per-call debug record to l (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
