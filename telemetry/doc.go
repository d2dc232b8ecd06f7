// SPDX-License-Identifier: MIT

// Package telemetry wires the OpenTelemetry SDK behind the spans and
// instruments the sparse and kernel packages emit through the global otel
// providers.
//
// Those packages only use the otel API; until Init installs providers their
// spans and metrics are no-ops. Init supports:
//
//   - traces: stdout (pretty JSON) or none
//   - metrics: prometheus (served by MetricsHandler), stdout or none
//
// NewLogger and LoggerWithTrace cover structured logging with log/slog,
// correlated with the active span.
//
//	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
package telemetry
