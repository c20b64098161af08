package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"feedcli/internal/config"
)

// TracerName names the tracer every feedcli span is started on
const TracerName = "feedcli"

// Tracing owns the SDK tracer provider and the file its spans are written to
type Tracing struct {
	provider *sdktrace.TracerProvider
	file     *os.File
	logger   *slog.Logger
}

// InitializeTracing installs an SDK tracer provider that writes finished spans
// as JSON to cfg.FilePath. It returns nil when no file is configured.
func InitializeTracing(cfg config.TracingConfig, version string, logger *slog.Logger) (*Tracing, error) {
	if cfg.FilePath == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file %s: %w", cfg.FilePath, err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(TracerName),
		semconv.ServiceVersion(version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	logger.Debug("Tracing initialized",
		slog.String("file", cfg.FilePath),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return &Tracing{provider: tp, file: file, logger: logger}, nil
}

// Provider returns the tracer provider operations should start spans on
func (t *Tracing) Provider() trace.TracerProvider {
	return t.provider
}

// Shutdown flushes pending spans and closes the trace file
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	err := t.provider.Shutdown(ctx)
	if cerr := t.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("tracing shutdown: %w", err)
	}
	t.logger.Debug("Tracing shutdown complete", slog.String("file", t.file.Name()))
	return nil
}

// Tracer returns the feedcli tracer from tp, or from the global provider when tp is nil.
// Without an installed SDK provider its spans are no-ops.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(TracerName)
}

// StartSpan starts a span on tracer and tags it with the run ID.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if runID := GetRunID(ctx); runID != "" {
		attrs = append(attrs, attribute.String("run.id", runID))
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
