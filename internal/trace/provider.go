// Package trace sets up OpenTelemetry tracing for chartgrid.
//
// With an endpoint configured, spans are batched to an OTLP/HTTP collector.
// Without one, Provider is nil and hands out a no-op tracer, so callers never
// branch on whether tracing is enabled.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer used for layout operations.
const InstrumentationName = "chartgrid/layout"

// DefaultServiceName is used when Options.ServiceName is empty.
const DefaultServiceName = "chartgrid"

// Options configures the exporter.
type Options struct {
	// Endpoint is the collector host:port. Empty disables tracing.
	Endpoint    string
	ServiceName string
	// Insecure sends over plain HTTP.
	Insecure bool
}

// Provider owns the SDK tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// New creates a Provider exporting to opts.Endpoint.
// Returns nil, nil when no endpoint is configured.
func New(ctx context.Context, opts Options) (*Provider, error) {
	if opts.Endpoint == "" {
		return nil, nil
	}

	clientOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.Endpoint)}
	if opts.Insecure {
		clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	return NewWithExporter(exporter, opts.ServiceName), nil
}

// NewWithExporter wraps an arbitrary span exporter, batching spans to it.
func NewWithExporter(exporter sdktrace.SpanExporter, serviceName string) *Provider {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	return &Provider{
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		),
	}
}

// Tracer returns the layout tracer, or a no-op tracer when p is nil.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	return p.provider.Tracer(InstrumentationName)
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil
}

// ForceFlush exports all finished spans without stopping the exporter.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.ForceFlush(ctx)
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}
	return nil
}
