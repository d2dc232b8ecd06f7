// SPDX-License-Identifier: MIT
package traversal_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/builder"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/traversal"
)

var sinkFrontiers *traversal.Frontiers[int32]

func gridCSR(b *testing.B, side int) *sparse.CSR[int32] {
	b.Helper()
	coo, err := builder.Grid[int32](side, side, builder.WithUndirected())
	if err != nil {
		b.Fatal(err)
	}
	csr, err := sparse.ToCSR(coo)
	if err != nil {
		b.Fatal(err)
	}

	return csr
}

func BenchmarkBFSNodes(b *testing.B) {
	csr := gridCSR(b, 300)
	src := []int32{0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err := traversal.BFSNodes(csr, src)
		if err != nil {
			b.Fatal(err)
		}
		sinkFrontiers = f
	}
}

func BenchmarkDFSEdges(b *testing.B) {
	csr := gridCSR(b, 300)
	src := []int32{0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err := traversal.DFSEdges(csr, src)
		if err != nil {
			b.Fatal(err)
		}
		sinkFrontiers = f
	}
}
