// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/lvsparse/parallel"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Report the platform and worker configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "platform\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(tw, "go\t%s\n", runtime.Version())
			fmt.Fprintf(tw, "cpus\t%d\n", runtime.NumCPU())
			fmt.Fprintf(tw, "gomaxprocs\t%d\n", runtime.GOMAXPROCS(0))
			fmt.Fprintf(tw, "workers\t%d\n", parallel.Resolve(a.cfg.Workers))
			fmt.Fprintf(tw, "grain\t%d\n", parallel.DefaultGrain)
			fmt.Fprintf(tw, "cpu features\t%s\n", cpuFeatures())
			fmt.Fprintf(tw, "traces\t%s\n", a.cfg.Telemetry.TraceExporter)
			fmt.Fprintf(tw, "metrics\t%s\n", a.cfg.Telemetry.MetricExporter)

			return tw.Flush()
		},
	}
}

// cpuFeatures lists the SIMD extensions relevant to the float kernels.
func cpuFeatures() string {
	var feats []string
	add := func(name string, ok bool) {
		if ok {
			feats = append(feats, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse4.1", cpu.X86.HasSSE41)
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("fma", cpu.X86.HasFMA)
		add("avx512f", cpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("fphp", cpu.ARM64.HasFPHP)
		add("asimdhp", cpu.ARM64.HasASIMDHP)
		add("sve", cpu.ARM64.HasSVE)
	}
	if len(feats) == 0 {
		return "none"
	}

	return strings.Join(feats, " ")
}
