// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		numNodes  int
		sortRows  bool
		transpose bool
		format    string
	)
	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Convert a \"src dst\" edge list into CSR",
		Long: `convert reads one "src dst" pair per line (blank lines and lines starting
with # are skipped) from FILE or stdin, stores edge src->dst at row dst,
column src, and prints the CSR arrays. Entry ids are the line order of the
edges.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			csr, err := a.convert(cmd.Context(), in, numNodes, sortRows, transpose)
			if err != nil {
				return err
			}

			return writeCSR(cmd.OutOrStdout(), csr, format)
		},
	}

	f := cmd.Flags()
	f.IntVar(&numNodes, "nodes", 0, "matrix dimension (0 = largest node id + 1)")
	f.BoolVar(&sortRows, "sort", false, "sort column indices within each row")
	f.BoolVar(&transpose, "transpose", false, "emit the transpose (row = source)")
	f.StringVar(&format, "format", "text", "output format: text or yaml")

	return cmd
}

// readEdges parses "src dst" lines. It returns the rows (destinations), the
// columns (sources) and the largest node id seen, or -1 for an empty list.
func readEdges(r io.Reader) (rows, cols []int64, maxID int64, err error) {
	maxID = -1
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, nil, 0, fmt.Errorf("line %d: want \"src dst\", got %q", line, text)
		}
		src, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("line %d: src: %w", line, err)
		}
		dst, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("line %d: dst: %w", line, err)
		}
		if src < 0 || dst < 0 {
			return nil, nil, 0, fmt.Errorf("line %d: negative node id: %w", line, sparse.ErrOutOfRange)
		}
		rows = append(rows, dst)
		cols = append(cols, src)
		maxID = max(maxID, src, dst)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("read edges: %w", err)
	}

	return rows, cols, maxID, nil
}

func (a *app) convert(ctx context.Context, r io.Reader, numNodes int, sortRows, transpose bool) (*sparse.CSR[int64], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, cols, maxID, err := readEdges(r)
	if err != nil {
		return nil, err
	}
	n := numNodes
	if n == 0 {
		n = int(maxID + 1)
	}
	opts := []sparse.Option{
		sparse.WithWorkers(a.cfg.Workers),
		sparse.WithContext(ctx),
		sparse.WithLogger(a.logger),
	}

	coo, err := sparse.NewCOO(n, n, rows, cols, sparse.ImplicitIDs[int64](),
		slices.IsSorted(rows), slices.IsSorted(cols), sparse.WithValidation())
	if err != nil {
		return nil, err
	}
	if transpose {
		coo = coo.Transpose()
	}
	csr, err := sparse.ToCSR(coo, opts...)
	if err != nil {
		return nil, err
	}
	if sortRows {
		if err := sparse.SortRows(csr, opts...); err != nil {
			return nil, err
		}
	}
	a.logger.Debug("edge list converted", "nodes", n, "nnz", csr.NNZ(), "sorted", csr.Sorted())

	return csr, nil
}

// csrDoc is the serialized form of a CSR matrix.
type csrDoc struct {
	NumRows int     `yaml:"num_rows"`
	NumCols int     `yaml:"num_cols"`
	Sorted  bool    `yaml:"sorted"`
	Indptr  []int64 `yaml:"indptr,flow"`
	Indices []int64 `yaml:"indices,flow"`
	IDs     []int64 `yaml:"ids,flow"`
}

func writeCSR(w io.Writer, csr *sparse.CSR[int64], format string) error {
	doc := csrDoc{
		NumRows: csr.NumRows(),
		NumCols: csr.NumCols(),
		Sorted:  csr.Sorted(),
		Indptr:  csr.Indptr(),
		Indices: csr.Indices(),
		IDs:     csr.EntryIDs().Materialize(csr.NNZ()),
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}

		return enc.Close()
	case "text", "":
		_, err := fmt.Fprintf(w, "shape: %dx%d sorted=%t\nindptr: %v\nindices: %v\nids: %v\n",
			doc.NumRows, doc.NumCols, doc.Sorted, doc.Indptr, doc.Indices, doc.IDs)
		return err
	default:
		return fmt.Errorf("convert: format %q: want text or yaml", format)
	}
}
