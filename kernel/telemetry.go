// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/katalvlaran/lvsparse/kernel"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

var (
	callsTotal   metric.Int64Counter
	callDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the kernel instruments once. Safe to call repeatedly.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		callsTotal, err = meter.Int64Counter(
			"lvsparse_kernel_calls_total",
			metric.WithDescription("Total number of kernel dispatches"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		callDuration, err = meter.Float64Histogram(
			"lvsparse_kernel_duration_seconds",
			metric.WithDescription("Duration of kernel dispatches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

// call is one traced kernel invocation.
type call struct {
	ctx    context.Context
	span   trace.Span
	name   string
	start  time.Time
	logger *slog.Logger
	attrs  []attribute.KeyValue
}

// startCall opens the span of kernel name.
func startCall(ctx context.Context, name string, logger *slog.Logger, attrs ...attribute.KeyValue) *call {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.Start(ctx, "kernel."+name, trace.WithAttributes(attrs...))

	return &call{ctx: ctx, span: span, name: name, start: time.Now(), logger: logger, attrs: attrs}
}

// end closes the span, records metrics and logs at Debug. It returns err
// unchanged so call sites can `return c.end(err)`.
func (c *call) end(err error) error {
	elapsed := time.Since(c.start)
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
	}
	c.span.End()

	if initMetrics() == nil {
		attrs := metric.WithAttributes(
			attribute.String("kernel", c.name),
			attribute.Bool("success", err == nil),
		)
		callsTotal.Add(c.ctx, 1, attrs)
		callDuration.Record(c.ctx, elapsed.Seconds(), attrs)
	}

	if c.logger.Enabled(c.ctx, slog.LevelDebug) {
		args := []any{"kernel", c.name, "duration", elapsed}
		for _, kv := range c.attrs {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}
		if err != nil {
			args = append(args, "error", err)
		}
		c.logger.DebugContext(c.ctx, "kernel: dispatch finished", args...)
	}

	return err
}
