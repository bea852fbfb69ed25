package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewContextHandler(slog.NewJSONHandler(buf, nil)))
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestContextHandler_RequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	ctx := WithRequestID(context.Background(), "req-42")

	// when
	newTestLogger(&buf).InfoContext(ctx, "hello")

	// then
	record := decode(t, &buf)
	assert.Equal(t, "req-42", record["request_id"])
	assert.NotContains(t, record, "trace_id")
}

func TestContextHandler_TraceID(t *testing.T) {
	// given
	var buf bytes.Buffer
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	// when
	newTestLogger(&buf).With("rpc", "GetProduct").InfoContext(ctx, "hello")

	// then
	record := decode(t, &buf)
	assert.Equal(t, traceID.String(), record["trace_id"])
	assert.Equal(t, "GetProduct", record["rpc"])
	assert.NotContains(t, record, "request_id")
}

func TestRequestID_Missing(t *testing.T) {
	_, ok := RequestID(context.Background())
	assert.False(t, ok)

	_, ok = RequestID(WithRequestID(context.Background(), ""))
	assert.False(t, ok)
}
