package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

type TracingConfig struct {
	Enabled          bool
	OTLPGrpcEndpoint string
	Insecure         bool
	SampleRate       float64
}

type ResourceConfig struct {
	ServiceName string
	Environment string
}

// SetupTracing configures the global tracer provider with an OTLP gRPC
// exporter. The returned function flushes and shuts the provider down.
// When tracing is disabled it only installs the propagator and returns
// a no-op shutdown.
func SetupTracing(ctx context.Context, cfg TracingConfig, res ResourceConfig) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{}
	if cfg.OTLPGrpcEndpoint != "" {
		opts = append(opts, otlptracegrpc.WithEndpoint(cfg.OTLPGrpcEndpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	attrs, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(res.ServiceName),
			semconv.DeploymentEnvironment(res.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(attrs),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
