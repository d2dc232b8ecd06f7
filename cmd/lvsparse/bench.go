// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/lvsparse/builder"
	"github.com/katalvlaran/lvsparse/kernel"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/telemetry"
	"github.com/katalvlaran/lvsparse/tensor"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/katalvlaran/lvsparse/cmd/lvsparse"

func newBenchCmd(a *app) *cobra.Command {
	var (
		nodes  int
		p      float64
		feat   int
		op     string
		reduce string
		dtype  string
		index  string
		seed   int64
		repeat int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time conversion and kernels on a random G(n, p) graph",
		Long: `bench samples a shuffled G(n, p) adjacency, converts it to CSR, sorts
the rows and times SpMM (op, reduce), an SDDMM dot product over src/dst
and an edge softmax over the resulting scores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := a.cfg.Bench
			f := cmd.Flags()
			if f.Changed("nodes") {
				b.Nodes = nodes
			}
			if f.Changed("p") {
				b.P = p
			}
			if f.Changed("feat") {
				b.Feat = feat
			}
			if f.Changed("op") {
				b.Op = op
			}
			if f.Changed("reduce") {
				b.Reduce = reduce
			}
			if f.Changed("dtype") {
				b.DType = dtype
			}
			if f.Changed("index") {
				b.Index = index
			}
			if f.Changed("seed") {
				b.Seed = seed
			}
			if f.Changed("repeat") {
				b.Repeat = repeat
			}

			return a.bench(cmd.Context(), cmd.OutOrStdout(), b)
		},
	}

	d := defaultConfig().Bench
	f := cmd.Flags()
	f.IntVar(&nodes, "nodes", d.Nodes, "number of nodes")
	f.Float64Var(&p, "p", d.P, "edge probability")
	f.IntVar(&feat, "feat", d.Feat, "feature width")
	f.StringVar(&op, "op", d.Op, "SpMM operator: add, sub, mul, div, use_lhs, use_rhs")
	f.StringVar(&reduce, "reduce", d.Reduce, "SpMM reducer: sum, max, min, mean, prod, none")
	f.StringVar(&dtype, "dtype", d.DType, "feature dtype: float16, float32, float64")
	f.StringVar(&index, "index", d.Index, "index width: int32 or int64")
	f.Int64Var(&seed, "seed", d.Seed, "RNG seed")
	f.IntVar(&repeat, "repeat", d.Repeat, "timed repetitions per kernel")

	return cmd
}

// benchSetup is the parsed, validated form of BenchConfig.
type benchSetup struct {
	BenchConfig
	op      kernel.Op
	reduce  kernel.Reducer
	dt      tensor.DType
	workers int
}

func (a *app) bench(ctx context.Context, w io.Writer, b BenchConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s := benchSetup{BenchConfig: b, workers: a.cfg.Workers}
	var err error
	if s.op, err = kernel.ParseOp(b.Op); err != nil {
		return err
	}
	if s.op == kernel.OpDot {
		return fmt.Errorf("bench: op %s is SDDMM-only: %w", s.op, kernel.ErrUnsupported)
	}
	if s.reduce, err = kernel.ParseReducer(b.Reduce); err != nil {
		return err
	}
	if s.dt, err = tensor.ParseDType(b.DType); err != nil {
		return err
	}
	if !s.dt.IsFloat() {
		return fmt.Errorf("bench: dtype %s: %w", s.dt, tensor.ErrUnsupportedDType)
	}
	if b.Feat < 1 || b.Repeat < 1 {
		return fmt.Errorf("bench: feat=%d and repeat=%d must be >= 1", b.Feat, b.Repeat)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "lvsparse.bench")
	defer span.End()
	logger := telemetry.LoggerWithTrace(ctx, a.logger)

	var rows []benchRow
	switch b.Index {
	case "int32":
		rows, err = runBench[int32](ctx, logger, s)
	case "int64", "":
		rows, err = runBench[int64](ctx, logger, s)
	default:
		return fmt.Errorf("bench: index %q: want int32 or int64", b.Index)
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "stage\tbest\tmean\tdetail\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.stage, r.best, r.mean, r.detail)
	}

	return tw.Flush()
}

type benchRow struct {
	stage      string
	best, mean time.Duration
	detail     string
}

// timeIt runs fn n times and reports the best and mean wall time.
func timeIt(stage, detail string, n int, fn func() error) (benchRow, error) {
	var best, total time.Duration
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return benchRow{}, fmt.Errorf("%s: %w", stage, err)
		}
		d := time.Since(start)
		total += d
		if i == 0 || d < best {
			best = d
		}
	}

	return benchRow{stage: stage, best: best, mean: total / time.Duration(n), detail: detail}, nil
}

func runBench[I sparse.Index](ctx context.Context, logger *slog.Logger, s benchSetup) ([]benchRow, error) {
	coo, err := builder.RandomSparse[I](s.Nodes, s.P, builder.WithSeed(s.Seed), builder.WithShuffle())
	if err != nil {
		return nil, err
	}
	n, nnz := coo.NumRows(), coo.NNZ()
	logger.Info("bench graph sampled", "nodes", n, "nnz", nnz, "p", s.P)

	sopts := []sparse.Option{sparse.WithWorkers(s.workers), sparse.WithContext(ctx), sparse.WithLogger(logger)}
	kopts := []kernel.Option{kernel.WithWorkers(s.workers), kernel.WithLogger(logger)}
	graph := fmt.Sprintf("n=%d nnz=%d", n, nnz)

	var csr *sparse.CSR[I]
	toCSR, err := timeIt("ToCSR", graph, s.Repeat, func() error {
		csr, err = sparse.ToCSR(coo, sopts...)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortRows, err := timeIt("SortRows", graph, 1, func() error {
		return sparse.SortRows(csr, sopts...)
	})
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(s.Seed))
	ufeat, err := randomTensor(rng, s.dt, n, s.Feat)
	if err != nil {
		return nil, err
	}
	efeat, err := randomTensor(rng, s.dt, nnz, s.Feat)
	if err != nil {
		return nil, err
	}
	outRows := n
	if s.reduce == kernel.ReduceNone {
		outRows = nnz
	}
	out, err := tensor.New(s.dt, outRows, s.Feat)
	if err != nil {
		return nil, err
	}
	var arg *kernel.ArgBuffers[I]
	if s.reduce == kernel.ReduceMax || s.reduce == kernel.ReduceMin {
		arg = &kernel.ArgBuffers[I]{ArgU: make([]I, out.Len()), ArgE: make([]I, out.Len())}
	}
	spmm, err := timeIt("SpMMCSR", fmt.Sprintf("%s/%s feat=%d %s", s.op, s.reduce, s.Feat, s.dt), s.Repeat, func() error {
		return kernel.SpMMCSR(ctx, s.op, s.reduce, csr, ufeat, efeat, out, arg, kopts...)
	})
	if err != nil {
		return nil, err
	}

	scores, err := tensor.New(s.dt, nnz, 1)
	if err != nil {
		return nil, err
	}
	sddmm, err := timeIt("SDDMMCSR", fmt.Sprintf("dot src,dst feat=%d %s", s.Feat, s.dt), s.Repeat, func() error {
		return kernel.SDDMMCSR(ctx, kernel.OpDot, csr, ufeat, ufeat, scores, kernel.TargetSrc, kernel.TargetDst, kopts...)
	})
	if err != nil {
		return nil, err
	}

	attn, err := tensor.New(s.dt, nnz, 1)
	if err != nil {
		return nil, err
	}
	softmax, err := timeIt("EdgeSoftmax", graph, s.Repeat, func() error {
		return kernel.EdgeSoftmax(ctx, csr, scores, attn, kopts...)
	})
	if err != nil {
		return nil, err
	}

	return []benchRow{toCSR, sortRows, spmm, sddmm, softmax}, nil
}

// randomTensor fills a [rows, cols] tensor with values in [0.5, 1.5), away
// from zero so div and prod stay finite.
func randomTensor(rng *rand.Rand, dt tensor.DType, rows, cols int) (*tensor.Tensor, error) {
	t, err := tensor.New(dt, rows, cols)
	if err != nil {
		return nil, err
	}
	vals := make([]float32, t.Len())
	for i := range vals {
		vals[i] = 0.5 + rng.Float32()
	}

	return t, t.StoreFloat32(vals)
}
