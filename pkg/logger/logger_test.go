package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewWithConfig(Config{
		Name:   "test",
		Format: FormatJSON,
		Level:  slog.LevelDebug,
		Writer: buf,
	})
}

func TestErrReturnsOriginalError(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	original := assert.AnError
	err := log.Err("something failed", original, "key", "value")

	assert.Equal(t, original, err)
	assert.Contains(t, buf.String(), "something failed")
	assert.Contains(t, buf.String(), "value")
}

func TestErrorCreatesErrorFromMessage(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	err := log.Error("invalid port", "port", 0)

	assert.EqualError(t, err, "invalid port")
	assert.Contains(t, buf.String(), "invalid port")
}

func TestFunctionAndFileAttachAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf).File("alerts").Function("RunPass")

	log.Info("running")

	var entry map[string]any
	line := strings.TrimSpace(buf.String())
	assert.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "alerts", entry["file"])
	assert.Equal(t, "RunPass", entry["function"])
	assert.Equal(t, "test", entry["package"])
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", TraceIDFromContext(ctx))

	var buf bytes.Buffer
	log := newBufferLogger(&buf).TraceFromContext(ctx)
	log.Info("traced")

	assert.Contains(t, buf.String(), "abc-123")
}

func TestTraceFromContextWithoutID(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf).TraceFromContext(context.Background())
	log.Info("untraced")

	assert.NotContains(t, buf.String(), "traceID")
}
