package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"feedcli/internal/config"
)

func TestStartSpan_RecordsRunIDAndStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := Tracer(tp)

	ctx := WithRunID(context.Background(), "run-1")
	spanCtx, span := StartSpan(ctx, tracer, "feedcli.test", attribute.String("file", "a.csv"))
	assert.Equal(t, "run-1", GetRunID(spanCtx))
	EndSpan(span, errors.New("boom"))

	_, span = StartSpan(context.Background(), tracer, "feedcli.ok")
	EndSpan(span, nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	failed := ended[0]
	assert.Equal(t, "feedcli.test", failed.Name())
	assert.Contains(t, failed.Attributes(), attribute.String("file", "a.csv"))
	assert.Contains(t, failed.Attributes(), attribute.String("run.id", "run-1"))
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "boom", failed.Status().Description)
	require.Len(t, failed.Events(), 1, "error is recorded as an event")

	ok := ended[1]
	assert.Equal(t, codes.Ok, ok.Status().Code)
	for _, kv := range ok.Attributes() {
		assert.NotEqual(t, attribute.Key("run.id"), kv.Key, "no run id without one in the context")
	}
}

func TestTracer_NilUsesGlobalProvider(t *testing.T) {
	_, span := StartSpan(context.Background(), Tracer(nil), "feedcli.noop")
	assert.NotPanics(t, func() { EndSpan(span, nil) })
}

func TestInitializeTracing(t *testing.T) {
	t.Run("disabled without a file", func(t *testing.T) {
		tracing, err := InitializeTracing(config.TracingConfig{SampleRatio: 1}, "test", nil)
		require.NoError(t, err)
		assert.Nil(t, tracing)
		assert.NoError(t, tracing.Shutdown(context.Background()))
	})

	t.Run("writes spans on shutdown", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "traces", "run.json")
		tracing, err := InitializeTracing(config.TracingConfig{FilePath: path, SampleRatio: 1}, "1.2.3", nil)
		require.NoError(t, err)
		require.NotNil(t, tracing)

		ctx := WithRunID(context.Background(), "run-42")
		_, span := StartSpan(ctx, Tracer(tracing.Provider()), "operation.run.verify")
		EndSpan(span, nil)
		require.NoError(t, tracing.Shutdown(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "operation.run.verify")
		assert.Contains(t, string(data), "run-42")
		assert.Contains(t, string(data), "1.2.3")
	})

	t.Run("zero sample ratio drops spans", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.json")
		tracing, err := InitializeTracing(config.TracingConfig{FilePath: path}, "test", nil)
		require.NoError(t, err)

		_, span := StartSpan(context.Background(), Tracer(tracing.Provider()), "operation.run.clean")
		EndSpan(span, nil)
		require.NoError(t, tracing.Shutdown(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "operation.run.clean")
	})

	t.Run("unwritable path", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := InitializeTracing(config.TracingConfig{FilePath: filepath.Join(blocker, "run.json"), SampleRatio: 1}, "test", nil)
		assert.Error(t, err)
	})
}
