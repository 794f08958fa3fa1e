package obs

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// tracerServiceName labels every span emitted by this process.
const tracerServiceName = "studykart-api"

// TracerOptions carries the knobs for the OTLP/HTTP trace pipeline. Zero
// values mean collector defaults, sample everything, development environment.
type TracerOptions struct {
	Endpoint      string
	SamplingRatio float64
	Environment   string
}

// InitTracer wires the global tracer provider and returns its shutdown hook.
// Spans go through a batcher, so the hook must run before process exit or the
// tail of the last traces is dropped.
func InitTracer(ctx context.Context, opts TracerOptions) (func(context.Context) error, error) {
	var clientOpts []otlptracehttp.Option
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(endpoint))
	}
	exporter, err := otlptracehttp.New(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	env := strings.TrimSpace(opts.Environment)
	if env == "" {
		env = "development"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(tracerServiceName),
		semconv.DeploymentEnvironment(env),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(samplerFor(opts.SamplingRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// samplerFor builds a parent-based ratio sampler. Ratios outside (0, 1] keep
// every trace.
func samplerFor(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
