// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// impl_random_sparse.go: RandomSparse(n, p) generator.
//
// Canonical model:
//   • Erdős–Rényi G(n, p): each admissible edge is included independently
//     with probability p.
//   • Directed (default): every ordered pair (src, dst); self-loops only
//     under WithLoops. Trials run by dst ascending, then src ascending, so
//     the result is row sorted.
//   • WithUndirected: unordered pairs {i, j} with i < j (i == j under
//     WithLoops), each stored in both directions.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices).
//   • 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   • An RNG is required when 0 < p < 1 (else ErrNeedRandSource); p ∈ {0, 1}
//     is deterministic and draws nothing.
//
// Complexity: O(n²) Bernoulli trials; O(nnz) space.
//
// Determinism: fixed trial order, so a fixed seed fixes the result.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse samples a G(n, p) adjacency.
func RandomSparse[I sparse.Index](n int, p float64, opts ...Option) (*sparse.COO[I], error) {
	if n < minRandomSparseVertices {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w",
			methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
	}
	if !(p >= probMin && p <= probMax) {
		return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
	}
	cfg := newConfig(opts...)
	if cfg.rng == nil && p > probMin && p < probMax {
		return nil, fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
	}
	if err := checkSize[I](methodRandomSparse, n, n*n); err != nil {
		return nil, err
	}

	keep := func() bool {
		switch p {
		case probMin:
			return false
		case probMax:
			return true
		default:
			return cfg.rng.Float64() < p
		}
	}

	expected := int(p*float64(n)*float64(n)) + 1
	el := newEdgeList[I](expected, cfg)
	if cfg.undirected {
		for i := 0; i < n; i++ {
			j0 := i + 1
			if cfg.loops {
				j0 = i
			}
			for j := j0; j < n; j++ {
				if keep() {
					el.add(i, j)
				}
			}
		}
	} else {
		for dst := 0; dst < n; dst++ {
			for src := 0; src < n; src++ {
				if src == dst && !cfg.loops {
					continue
				}
				if keep() {
					el.add(src, dst)
				}
			}
		}
	}

	return el.build(methodRandomSparse, n, n, cfg)
}
