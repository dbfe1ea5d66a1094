// Package otel configures OpenTelemetry tracing for pawprint services.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects the trace exporter.
type Config struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	Endpoint string `env:"PAWPRINT_OTEL_ENDPOINT"`
	// Disabled turns tracing off even when an endpoint is set.
	Disabled bool `env:"PAWPRINT_OTEL_DISABLED"`
	// SampleRatio is the fraction of root spans recorded. Values outside
	// (0, 1) sample everything.
	SampleRatio float64 `env:"PAWPRINT_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Enabled reports whether Setup would register a provider.
func (c Config) Enabled() bool {
	return !c.Disabled && c.endpoint() != ""
}

func (c Config) endpoint() string {
	return strings.TrimSpace(c.Endpoint)
}

func (c Config) sampler() sdktrace.Sampler {
	if c.SampleRatio <= 0 || c.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
}

// Setup registers a global tracer provider exporting to cfg.Endpoint and
// returns the function that flushes it. A disabled config installs nothing
// and returns a no-op flush, so request middleware keeps using the default
// non-recording tracer.
func Setup(ctx context.Context, serviceName string, cfg Config) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.endpoint()))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return provider.Shutdown, nil
}
