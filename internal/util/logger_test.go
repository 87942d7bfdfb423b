package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string, format LogFormat) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := &Logger{
		level:  ParseLogLevel(level),
		fields: make(map[string]interface{}),
	}
	logger.AddOutput(NewConsoleOutput(buf, format))
	return logger, buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("info", FormatText)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] shown")
}

func TestLogger_TextFieldsSortedAndRedacted(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatText)

	logger.Debug("call",
		Field{Key: "endpoint", Value: "GetBalance"},
		Field{Key: "Authen", Value: "token-value"},
		Field{Key: "checksum", Value: "abc%3d"},
		Field{Key: "status", Value: 200})

	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(out, "Authen=[REDACTED] checksum=[REDACTED] endpoint=GetBalance status=200"), out)
	assert.NotContains(t, out, "token-value")
}

func TestLogger_JSONFormat(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatJSON)

	logger.With(Field{Key: "op", Value: "balance"}).Info("done", Field{Key: "secret", Value: "x"})

	out := buf.String()
	assert.Contains(t, out, `"message":"done"`)
	assert.Contains(t, out, `"op":"balance"`)
	assert.Contains(t, out, `"secret":"[REDACTED]"`)
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	logger, err := NewLogger("debug", path, false, FormatText)
	require.NoError(t, err)
	logger.Infof("hello %s", "file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestNewLogger_NoOutputsIsSilent(t *testing.T) {
	logger, err := NewLogger("debug", "", false, FormatText)
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Error("dropped") })
}

func TestGlobalLogger(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatText)
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	LogDebugFields("request", Field{Key: "endpoint", Value: "GetVersion"})
	LogInfof("n=%d", 3)
	LogWarnf("careful %s", "now")

	out := buf.String()
	assert.Contains(t, out, "endpoint=GetVersion")
	assert.Contains(t, out, "n=3")
	assert.Contains(t, out, "[WARN] careful now")

	SetLogger(nil)
	assert.NotPanics(t, func() { LogErrorf("nobody %s", "listening") })
}
