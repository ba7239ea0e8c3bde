package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestContextIDs(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithSessionID(ctx, "cart-9")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "cart-9", GetSessionID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestL_EnrichesEntries(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithContext(ctx, zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithSessionID(ctx, "cart-9")

	L(ctx).With(zap.String("op", "checkout")).Info("done")
	assert.Equal(t, traceID.String(), GetTraceID(ctx))

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "cart-9", fields["session_id"])
	assert.Equal(t, "checkout", fields["op"])
}

func TestWithLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	WithLogger(context.Background(), zap.New(core)).Warn("careful")
	WithLogger(context.Background(), nil).Error("dropped")

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
}
