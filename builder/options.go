// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors validate and panic on meaningless inputs.
//   • Determinism is explicit: randomness only enters via WithSeed/WithRand.

package builder

import "math/rand"

// Option customizes one generator call.
type Option func(*config)

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed for
// reproducible runs.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}

// WithSeed installs a fresh *rand.Rand seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithUndirected stores every generated edge in both directions. Self-loops
// are stored once.
func WithUndirected() Option {
	return func(c *config) { c.undirected = true }
}

// WithLoops lets RandomSparse draw self-loops.
func WithLoops() Option {
	return func(c *config) { c.loops = true }
}

// WithShuffle permutes the emitted entries with the configured RNG. The
// result is flagged unsorted unless the permutation happens to keep order.
func WithShuffle() Option {
	return func(c *config) { c.shuffle = true }
}

// WithExplicitIDs stores entry ids 0..nnz-1 in emission order instead of
// leaving them implicit.
func WithExplicitIDs() Option {
	return func(c *config) { c.explicitIDs = true }
}
