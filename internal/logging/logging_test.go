package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestStructuredLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "xsvalue", "v1.2.3", "info")
	logger.Debug("hidden")
	logger.Info("checked", "values", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "checked", rec["msg"])
	require.Equal(t, "xsvalue", rec["module"])
	require.Equal(t, "v1.2.3", rec["version"])
	require.InDelta(t, 3, rec["values"], 0)
	require.NotContains(t, rec, "source")
}

func TestStructuredLoggerDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	NewStructuredLoggerTo(&buf, "xsvalue", "dev", "debug").Debug("resolving")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Contains(t, rec, "source")
}

func TestLevelFromEnvironment(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "xsvalue", "dev", "")
	logger.Warn("dropped")
	require.Zero(t, buf.Len())
	logger.Error("kept")
	require.NotZero(t, buf.Len())
}
