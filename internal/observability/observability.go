// Package observability builds the process-wide logger, metrics registry and
// tracer provider.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/tourney-bot/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds observability settings.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	// OTLPEndpoint is a host:port gRPC collector; empty disables trace export.
	OTLPEndpoint string
	OTLPInsecure bool
	SampleRate   float64
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

// Provider holds the logger and tracer provider.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Observability is everything Init set up.
type Observability struct {
	Provider Provider
	Registry *prometheus.Registry
	Metrics  *metrics.PrometheusMetrics
	shutdown []func(context.Context) error
}

// Init builds the logger, registers process and service metrics on a fresh
// registry, and installs the global tracer provider.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.NewPrometheusMetrics(reg, strings.ReplaceAll(cfg.ServiceName, "-", "_"))
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	obs := &Observability{Registry: reg, Metrics: m}
	obs.Provider.Logger = logger

	if cfg.OTLPEndpoint == "" {
		obs.Provider.TracerProvider = noop.NewTracerProvider()
		logger.InfoContext(ctx, "Trace export disabled")
		return obs, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	obs.Provider.TracerProvider = tp
	obs.shutdown = append(obs.shutdown, tp.Shutdown)
	logger.InfoContext(ctx, "Trace export enabled",
		slog.String("endpoint", cfg.OTLPEndpoint),
		slog.Float64("sample_rate", cfg.SampleRate))
	return obs, nil
}

// Shutdown flushes pending spans.
func (o *Observability) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, fn := range o.shutdown {
		if err := fn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
