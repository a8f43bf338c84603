package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	tracerName = "gitsleuth"
	meterName  = "gitsleuth"

	shutdownTimeout = 5 * time.Second
)

// Config controls observability initialization.
type Config struct {
	// Service is the service.name resource attribute.
	Service string
	// Env is the deployment environment attribute; empty omits it.
	Env string
	// OTLPEndpoint is the gRPC collector endpoint. Empty selects no-op
	// tracer and meter providers.
	OTLPEndpoint string
	// LogLevel is the minimum slog level.
	LogLevel slog.Level
	// LogFormat is "json" or "text".
	LogFormat string
}

// Providers holds the initialized observability providers.
type Providers struct {
	// Tracer is the named tracer for creating spans.
	Tracer trace.Tracer

	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the context-aware structured logger.
	Logger *slog.Logger

	// Shutdown flushes pending telemetry. Must be called before exit.
	Shutdown func(ctx context.Context) error
}

// Noop returns providers that record nothing and log to stderr.
func Noop() Providers {
	return Providers{
		Tracer:   nooptrace.NewTracerProvider().Tracer(tracerName),
		Meter:    noopmetric.NewMeterProvider().Meter(meterName),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Shutdown: func(context.Context) error { return nil },
	}
}

// Init initializes tracing, metrics, and structured logging. When
// cfg.OTLPEndpoint is empty, no-op tracer and meter providers are used.
func Init(cfg Config) (Providers, error) {
	logger := buildLogger(cfg)

	if cfg.OTLPEndpoint == "" {
		providers := Noop()
		providers.Logger = logger

		return providers, nil
	}

	ctx := context.Background()

	res, err := buildResource(cfg)
	if err != nil {
		return Providers{}, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return Providers{}, fmt.Errorf("create trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return Providers{}, fmt.Errorf("create metric exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		return errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)
	}

	return Providers{
		Tracer:   tracerProvider.Tracer(tracerName),
		Meter:    meterProvider.Meter(meterName),
		Logger:   logger,
		Shutdown: shutdown,
	}, nil
}

func buildLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogFormat == "json" {
		inner = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		inner = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(NewTracingHandler(inner, cfg.Service, cfg.Env))
}

func buildResource(cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.Service),
	}

	if cfg.Env != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(cfg.Env))
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	return res, nil
}
