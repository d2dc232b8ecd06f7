// SPDX-License-Identifier: MIT

// Package sparse implements the two storage formats of a graph adjacency,
// CSR (row-compressed) and COO (coordinate list), together with the
// structural operations built on them.
//
// What lives here:
//   - Data model: CSR and COO generic over the index width (int32/int64),
//     with an explicit optional entry-id payload (EntryIDs) and advisory
//     sortedness flags.
//   - Conversion: ToCSR (parallel boundary scan when rows are sorted,
//     barrier-staged counting sort otherwise), ToCOO, CSRTranspose.
//   - Sorting: SortRows (in place) and SortRowsByTag (tag-bucketed copy plus
//     a TagBoundaries table).
//   - Queries: IsNonZero, RowNNZ, Row, Get and their batched forms with
//     length-1 broadcasting; GetEntriesAndIndices with a size-adaptive
//     scan/multimap strategy; HasDuplicate.
//   - Editing: SliceRows, SliceRowList, SliceMatrix, COO.Transpose, Reorder.
//
// Ownership: constructors bind caller buffers without copying. SortRows
// mutates its argument; every other operation returns a matrix that shares
// nothing with its input, except COO.Transpose which is an O(1) view.
//
// Flags are trusted. A COO whose RowSorted() is true but whose rows are not
// ordered is a caller error; results computed from it are unspecified.
//
// Errors are sentinels (ErrOutOfRange, ErrShapeMismatch, ...) wrapped with
// the failing method; match them with errors.Is.
package sparse
