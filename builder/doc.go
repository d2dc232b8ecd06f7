// SPDX-License-Identifier: MIT

// Package builder generates deterministic sparse adjacency fixtures as
// *sparse.COO matrices: paths, cycles, stars, wheels, complete and
// complete bipartite graphs, grids and Erdős–Rényi random graphs.
//
// Orientation follows the rest of the module: an edge u→v is stored as the
// entry (row v, col u), so rows are destinations and columns sources.
//
// Options:
//   - WithSeed / WithRand: randomness for RandomSparse and WithShuffle.
//   - WithUndirected: every edge u–v is stored in both directions.
//   - WithLoops: RandomSparse may draw self-loops.
//   - WithShuffle: entries come out in random order (unsorted COO).
//   - WithExplicitIDs: entry ids are materialized as the emission index,
//     so they survive shuffling.
//
// Guarantees:
//   - Same arguments, options and seed give identical matrices.
//   - Sortedness flags are computed from the emitted arrays, never guessed.
//   - Invalid parameters return sentinel errors; option constructors panic
//     on meaningless values (WithRand(nil)).
package builder
