// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/katalvlaran/lvsparse/telemetry"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfg      Config
	logger   *slog.Logger
	shutdown func(context.Context) error
	server   *http.Server

	configPath  string
	logFormat   string
	logLevel    string
	workers     int
	traces      string
	metrics     string
	metricsAddr string
}

// execute runs cmd and always releases what setup started, including when
// the command itself failed.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()

	return errors.Join(err, a.teardown(context.Background()))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lvsparse",
		Short:         "Sparse adjacency and message-passing kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "YAML configuration file")
	f.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	f.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.IntVar(&a.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	f.StringVar(&a.traces, "traces", telemetry.ExporterNone, "trace exporter: stdout or none")
	f.StringVar(&a.metrics, "metrics", telemetry.ExporterNone, "metric exporter: prometheus, stdout or none")
	f.StringVar(&a.metricsAddr, "metrics-addr", "", "serve /metrics on this address (prometheus exporter only)")

	root.AddCommand(
		newBenchCmd(a),
		newConvertCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup loads the configuration, lets explicitly set flags override it and
// starts logging and telemetry.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if f.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if f.Changed("workers") {
		cfg.Workers = a.workers
	}
	if f.Changed("traces") {
		cfg.Telemetry.TraceExporter = a.traces
	}
	if f.Changed("metrics") {
		cfg.Telemetry.MetricExporter = a.metrics
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr = a.metricsAddr
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	cfg.Telemetry.ServiceVersion = version
	cfg.Telemetry.Writer = cmd.ErrOrStderr()
	a.cfg = cfg

	if a.logger, err = telemetry.NewLogger(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.shutdown, err = telemetry.Init(ctx, cfg.Telemetry); err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	return a.serveMetrics()
}

func (a *app) serveMetrics() error {
	if a.cfg.MetricsAddr == "" {
		return nil
	}
	h := telemetry.MetricsHandler()
	if h == nil {
		return fmt.Errorf("metrics-addr requires the %s metric exporter", telemetry.ExporterPrometheus)
	}
	ln, err := net.Listen("tcp", a.cfg.MetricsAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.MetricsAddr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	a.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
	}
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(ctx))
	}

	return errors.Join(errs...)
}
