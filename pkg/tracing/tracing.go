// Package tracing configures OpenTelemetry for s3ctl. Every invocation runs
// under one span, and SDK calls made on its behalf become child spans.
package tracing

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/scality/s3control-cli/pkg/constants"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"

	tracerName = "github.com/scality/s3control-cli"
)

// Config selects the span exporter.
type Config struct {
	Exporter     string
	OTLPEndpoint string
	ServiceName  string
	Version      string
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

var (
	newStdoutExporter = func() (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	}
	newOTLPExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
		var opts []otlptracehttp.Option
		if endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
		}
		return otlptracehttp.New(ctx, opts...)
	}
)

// Setup installs the global tracer provider for cfg. With the "none"
// exporter the global no-op provider is left in place.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch cfg.Exporter {
	case "", ExporterNone:
		return func(context.Context) error { return nil }, nil
	case ExporterStdout:
		exporter, err = newStdoutExporter()
	case ExporterOTLP:
		exporter, err = newOTLPExporter(ctx, cfg.OTLPEndpoint)
	default:
		return nil, fmt.Errorf("unknown trace exporter %q, expected one of %s, %s or %s", cfg.Exporter, ExporterNone, ExporterStdout, ExporterOTLP)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s trace exporter: %w", cfg.Exporter, err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	klog.V(constants.LvlDebug).InfoS("Tracing enabled", "exporter", cfg.Exporter, "endpoint", cfg.OTLPEndpoint)

	return provider.Shutdown, nil
}

// StartInvocation opens the span covering one command invocation.
func StartInvocation(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}
