// SPDX-License-Identifier: MIT

// Package lvsparse is a sparse-adjacency substrate for message passing on
// graphs: compressed and coordinate matrices, conversions between them,
// structural queries and edits, and the generalized SpMM / SDDMM kernels
// that graph neural network layers are built from.
//
// Everything lives in subpackages:
//
//	tensor/    typed dense feature buffers (float16/32/64, int32/64) + gonum bridge
//	sparse/    CSR and COO matrices, ToCSR/ToCOO/transpose, sorting, queries, slicing
//	kernel/    SpMM, SDDMM, hetero SpMM, segment reduce, scatter, edge softmax
//	parallel/  chunked worker pools and barrier regions used by the two above
//	builder/   deterministic topologies (path, star, grid, complete, G(n,p)) as COO
//	traversal/ BFS, topological and DFS frontiers over a CSR adjacency
//	telemetry/ OpenTelemetry + Prometheus wiring and slog helpers
//	cmd/lvsparse  CLI: convert edge lists, benchmark kernels, inspect the host
//
// Orientation is fixed across the module: a matrix row is a destination
// node, a column a source node, and an entry id names the edge.
//
// Quick example, copy-sum aggregation over a 3-node path:
//
//	coo, _ := builder.Path[int64](3, builder.WithUndirected())
//	csr, _ := sparse.ToCSR(coo)
//	feat, _ := tensor.FromFloat32s([]float32{1, 10, 100}, 3, 1)
//	out, _ := tensor.New(tensor.Float32, 3, 1)
//	_ = kernel.SpMMCSR(ctx, kernel.OpCopyLhs, kernel.ReduceSum, csr, feat, nil, out, nil)
//	// out = [10 101 10]
//
//	go get github.com/katalvlaran/lvsparse
package lvsparse
