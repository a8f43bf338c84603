package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/observability"
)

func TestTracingHandlerServiceAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(
		slog.NewJSONHandler(&buf, nil), "gitsleuth", "test")
	logger := slog.New(handler)

	logger.Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"service":"gitsleuth"`)
	assert.Contains(t, out, `"env":"test"`)
	assert.NotContains(t, out, "trace_id")
}

func TestTracingHandlerInjectsSpanContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(
		slog.NewJSONHandler(&buf, nil), "gitsleuth", "")
	logger := slog.New(handler)

	traceID := trace.TraceID{0x01}
	spanID := trace.SpanID{0x02}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "traced")

	out := buf.String()
	assert.Contains(t, out, traceID.String())
	assert.Contains(t, out, spanID.String())
}

func TestTracingHandlerWithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(
		slog.NewJSONHandler(&buf, nil), "gitsleuth", "test")
	logger := slog.New(handler).WithGroup("attribution").With("path", "main.go")

	logger.Info("scoped")

	out := buf.String()
	assert.Contains(t, out, `"service":"gitsleuth"`)
	assert.Contains(t, out, `"path":"main.go"`)
}
