// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// config.go: resolved configuration and deterministic defaults.
//
// Defaults:
//   • rng         = nil   (pure/deterministic unless seeded)
//   • undirected  = false (u→v only)
//   • loops       = false
//   • shuffle     = false (emission order, sortedness preserved)
//   • explicitIDs = false (ids are the storage positions)

package builder

import "math/rand"

// config aggregates all knobs used by generators. Passed by value.
type config struct {
	rng         *rand.Rand
	undirected  bool
	loops       bool
	shuffle     bool
	explicitIDs bool
}

// newConfig applies opts in order (later overrides earlier).
func newConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
