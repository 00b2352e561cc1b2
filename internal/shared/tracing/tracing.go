// Package tracing configures the process-wide OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"

	"career-backend/internal/shared/telemetry"
)

// ServiceName names spans and the otelgin middleware.
const ServiceName = "career-backend"

type Options struct {
	Enabled     bool
	Environment string
	// Endpoint is an OTLP/HTTP host:port. Empty exports to stdout.
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// Init installs a tracer provider when tracing is enabled and returns its shutdown.
// Disabled tracing leaves the no-op global provider in place.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !opts.Enabled {
		return noop, nil
	}

	exporter, err := newExporter(ctx, opts)
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(ServiceName),
		attribute.String("deployment.environment", opts.Environment),
	))
	if err != nil {
		telemetry.Warn("tracing.resource_failed", map[string]any{"error": err})
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(opts.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	telemetry.Info("tracing.init", map[string]any{"endpoint": opts.Endpoint, "ratio": clampRatio(opts.SampleRatio)})
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return stdouttrace.New()
	}
	httpOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if opts.Insecure {
		httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, httpOpts...)
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// Start opens a span on the global tracer.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(ServiceName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// TraceID returns the hex trace id carried by ctx, or "" when none is sampled.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
