package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(level LogLevel) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&Config{Level: level, Format: "json", Output: &buf}), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	logger.Info(context.Background(), "compiled", "document", "doc-1", "files", 2)

	entry := decodeLine(t, buf)
	assert.Equal(t, "compiled", entry["msg"])
	assert.Equal(t, "doc-1", entry["document"])
	assert.Equal(t, float64(2), entry["files"])
}

func TestLoggerLevelGate(t *testing.T) {
	logger, buf := jsonLogger(LevelWarn)
	logger.Debug(context.Background(), "noise")
	logger.Info(context.Background(), "noise")
	assert.Zero(t, buf.Len())

	logger.Error(context.Background(), errors.New("boom"), "failed")
	entry := decodeLine(t, buf)
	assert.Equal(t, "failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLoggerWithComponentAndFields(t *testing.T) {
	logger, buf := jsonLogger(LevelInfo)
	logger = logger.WithComponent("pipeline").With("document", "doc-1")
	logger.Info(context.Background(), "done")

	entry := decodeLine(t, buf)
	assert.Equal(t, "pipeline", entry["component"])
	assert.Equal(t, "doc-1", entry["document"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("anything else"))
}

func TestNopLoggerStaysQuiet(t *testing.T) {
	// must not panic and must not write anywhere observable
	logger := NewNop()
	logger.Info(context.Background(), "ignored")
	logger.Error(context.Background(), errors.New("ignored"), "ignored")
}
