// SPDX-License-Identifier: MIT

// Package kernel implements the generalized sparse kernels of message
// passing over a sparse.CSR or sparse.COO adjacency.
//
// Orientation: a matrix row is a destination node, a column a source node,
// and an entry id an edge. Feature buffers are tensor.Tensor values whose
// leading axis indexes nodes or edges.
//
//   - SpMMCSR / SpMMCOO: node outputs, out[dst] = reduce(op(u[src], e[id])).
//   - SDDMMCSR / SDDMMCOO: edge outputs, out[id] = op(lhs[.], rhs[.]) with
//     each side bound to source, destination or edge by a Target.
//   - SpMMHetero: summed SpMM over several relations.
//   - SegmentReduce, ScatterAdd, BackwardSegmentCmp: row-range reductions
//     and their scatter counterparts.
//   - EdgeSoftmax: per-destination softmax of edge logits.
//
// Operators (Op), reducers (Reducer) and targets (Target) are typed; the
// Parse* helpers map their textual names. Float16, Float32 and Float64
// buffers are accepted; Float16 is computed in float32 and stored back.
// All buffers of one call share a dtype.
//
// Every call opens an OpenTelemetry span "kernel.<Name>", counts itself in
// lvsparse_kernel_calls_total and records lvsparse_kernel_duration_seconds
// against the global providers, and logs one Debug record.
//
// Errors are the sentinels in errors.go wrapped with the kernel name.
// Nothing is written to output buffers when validation fails; SpMMHetero
// validates every relation before it zeroes a destination.
package kernel
