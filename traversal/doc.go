// SPDX-License-Identifier: MIT

// Package traversal walks a square sparse.CSR adjacency and reports the
// visit as frontiers: a flat id array cut into consecutive sections.
//
// Row v of the matrix lists the successors of node v. For the
// destination-major adjacency the kernels consume, pass the transpose
// (sparse.CSRTranspose) to walk edges forward, or the matrix itself to
// walk them backward.
//
// What it provides:
//   - BFSNodes:    one section per BFS layer, node ids
//   - BFSEdges:    one section per layer, ids of the tree edges that reached it
//   - Topological: Kahn layers; ErrCycleDetected when a cycle remains
//   - DFSEdges:    one section per source, tree edges in visit order
//   - DFSLabeledEdges: DFSEdges plus optional reverse and non-tree edges,
//     tagged Forward, Reverse or NonTree
//
// Determinism: sources are expanded in input order and neighbors in row
// order, so equal inputs give equal frontiers.
//
// Cancellation: WithContext; the context is checked once per frontier (BFS,
// Topological) or per stack step (DFS).
package traversal
