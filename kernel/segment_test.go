// SPDX-License-Identifier: MIT
package kernel_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvsparse/kernel"
	"github.com/katalvlaran/lvsparse/tensor"
	"github.com/stretchr/testify/require"
)

// segFeat is 5 x 2; offsets [0,2,2,5] give segments {0,1}, {}, {2,3,4}.
func segFeat(t *testing.T) *tensor.Tensor {
	t.Helper()
	return f32(t, []float32{
		1, 2,
		3, 0,
		5, 5,
		-1, 4,
		2, 2,
	}, 5, 2)
}

var segOffsets = []int32{0, 2, 2, 5}

func TestSegmentReduce(t *testing.T) {
	tests := []struct {
		reduce  kernel.Reducer
		want    []float32
		wantArg []int32
	}{
		{kernel.ReduceSum, []float32{4, 2, 0, 0, 6, 11}, nil},
		{kernel.ReduceMean, []float32{2, 1, 0, 0, 2, 11.0 / 3}, nil},
		{kernel.ReduceMax, []float32{3, 2, 0, 0, 5, 5}, []int32{1, 0, -1, -1, 2, 2}},
		{kernel.ReduceMin, []float32{1, 0, 0, 0, -1, 2}, []int32{0, 1, -1, -1, 3, 4}},
	}
	for _, tc := range tests {
		t.Run(tc.reduce.String(), func(t *testing.T) {
			out := zeros(t, tensor.Float32, 3, 2)
			arg := make([]int32, 6)
			require.NoError(t, kernel.SegmentReduce(context.Background(), tc.reduce, segFeat(t), segOffsets, out, arg, kernel.WithWorkers(2)))
			require.InDeltaSlice(t, tc.want, values32(t, out), 1e-6)
			if tc.wantArg != nil {
				require.Equal(t, tc.wantArg, arg)
			}
		})
	}
}

func TestSegmentReduce_Errors(t *testing.T) {
	ctx := context.Background()
	out := zeros(t, tensor.Float32, 3, 2)

	require.ErrorIs(t, kernel.SegmentReduce(ctx, kernel.ReduceProd, segFeat(t), segOffsets, out, nil), kernel.ErrUnsupported)
	require.ErrorIs(t, kernel.SegmentReduce(ctx, kernel.ReduceSum, segFeat(t), []int32{0, 3, 2, 5}, out, nil), kernel.ErrOutOfRange)
	require.ErrorIs(t, kernel.SegmentReduce(ctx, kernel.ReduceSum, segFeat(t), []int32{0, 2, 2, 6}, out, nil), kernel.ErrOutOfRange)
	require.ErrorIs(t, kernel.SegmentReduce(ctx, kernel.ReduceSum, segFeat(t), []int32{0, 5}, out, nil), kernel.ErrShapeMismatch)
	require.ErrorIs(t, kernel.SegmentReduce(ctx, kernel.ReduceMax, segFeat(t), segOffsets, out, make([]int32, 5)), kernel.ErrShapeMismatch)
}

func TestScatterAdd(t *testing.T) {
	feat := f64(t, []float64{1, 2, 3, 4}, 4, 1)
	out := f64(t, []float64{-7, -7, -7}, 3, 1)

	require.NoError(t, kernel.ScatterAdd(context.Background(), feat, []int64{0, 2, 0, 1}, out))
	require.Equal(t, []float64{4, 4, 2}, values64(t, out))

	require.ErrorIs(t, kernel.ScatterAdd(context.Background(), feat, []int64{0, 3, 0, 1}, out), kernel.ErrOutOfRange)
	require.ErrorIs(t, kernel.ScatterAdd(context.Background(), feat, []int64{0, 1}, out), kernel.ErrShapeMismatch)
}

func TestBackwardSegmentCmp(t *testing.T) {
	ctx := context.Background()
	seg := zeros(t, tensor.Float32, 3, 2)
	arg := make([]int32, 6)
	require.NoError(t, kernel.SegmentReduce(ctx, kernel.ReduceMax, segFeat(t), segOffsets, seg, arg))

	grad := f32(t, []float32{1, 2, 3, 4, 5, 6}, 3, 2)
	out := zeros(t, tensor.Float32, 5, 2)
	require.NoError(t, kernel.BackwardSegmentCmp(ctx, grad, arg, out))
	require.Equal(t, []float32{
		0, 2,
		1, 0,
		5, 6,
		0, 0,
		0, 0,
	}, values32(t, out))

	require.ErrorIs(t, kernel.BackwardSegmentCmp(ctx, grad, []int32{0, 0, 0, 0, 0, 9}, out), kernel.ErrOutOfRange)
	require.ErrorIs(t, kernel.BackwardSegmentCmp(ctx, grad, arg[:4], out), kernel.ErrShapeMismatch)
}
