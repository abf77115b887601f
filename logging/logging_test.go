package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogError(logger, "load failed", errors.New("no such file"), slog.String("dir", "data"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "load failed", entry["msg"])
	assert.Equal(t, "no such file", entry["error"])
	assert.Equal(t, "data", entry["dir"])
}

func TestLogOperationSkipsZeroDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogOperation(logger, "aggregated", slog.Int("buckets", 12), slog.Duration("duration", 0))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "aggregated", entry["msg"])
	assert.EqualValues(t, 12, entry["buckets"])
	assert.NotContains(t, entry, "duration")

	buf.Reset()
	LogOperation(logger, "trained", slog.Duration("duration", time.Second))
	entry = decodeLine(t, &buf)
	assert.Contains(t, entry, "duration")
}

func TestLogHTTPRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogHTTPRequest(logger, "POST", "/", 400, 1.5)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.EqualValues(t, 400, entry["status"])
}

func TestNilLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"))
		LogOperation(nil, "x")
		LogHTTPRequest(nil, "GET", "/", 200, 0)
	})
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	fallback := NewConsoleLogger(&buf, slog.LevelInfo)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, ContextLogger(ctx, fallback))
	assert.Same(t, fallback, ContextLogger(context.Background(), fallback))
	assert.Nil(t, ContextLogger(context.Background(), nil))

	// a nil logger stored in the context does not shadow the fallback
	assert.Same(t, fallback, ContextLogger(WithLogger(context.Background(), nil), fallback))
}
