// SPDX-License-Identifier: MIT
package sparse_test

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

// ExampleToCSR converts an unsorted edge list into row-compressed form.
func ExampleToCSR() {
	coo, _ := sparse.NewCOO(3, 3, []int64{2, 0, 0}, []int64{0, 1, 2}, sparse.ImplicitIDs[int64](), false, true)
	csr, _ := sparse.ToCSR(coo, sparse.WithWorkers(1))
	fmt.Println(csr.Indptr(), csr.Indices(), csr.EntryIDs().Values())
	// Output:
	// [0 2 2 3] [1 2 0] [1 2 0]
}

// ExampleSortRowsByTag buckets each row by a per-column tag.
func ExampleSortRowsByTag() {
	csr, _ := sparse.NewCSR(1, 4, []int32{0, 4}, []int32{3, 0, 2, 1}, sparse.ImplicitIDs[int32](), true)
	out, bounds, _ := sparse.SortRowsByTag(csr, []int32{0, 1, 0, 1}, 2)
	fmt.Println(out.Indices(), bounds.Row(0))
	// Output:
	// [0 2 3 1] [0 2 4]
}

// ExampleCOO_GetEntriesAndIndices returns every stored id, duplicates included.
func ExampleCOO_GetEntriesAndIndices() {
	coo, _ := sparse.NewCOO(2, 2, []int32{0, 1, 1}, []int32{1, 0, 0}, sparse.ImplicitIDs[int32](), true, false)
	_, _, ids, _ := coo.GetEntriesAndIndices([]int32{1}, []int32{0})
	fmt.Println(ids)
	// Output:
	// [1 2]
}
