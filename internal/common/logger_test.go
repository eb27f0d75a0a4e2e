package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the default logger into a buffer for the duration of fn.
func captureLogs(t *testing.T, level slog.Level, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	defer slog.SetDefault(prev)

	fn()
	return buf.String()
}

func TestLogErrorIncludesErrorAndFields(t *testing.T) {
	out := captureLogs(t, slog.LevelError, func() {
		LogError(errors.New("connection refused"), "backend request failed", Fields{
			"method": "GET",
			"path":   "/transactions",
		})
	})

	assert.Contains(t, out, "backend request failed")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "path=/transactions")
}

func TestLogInfoEmitsFields(t *testing.T) {
	out := captureLogs(t, slog.LevelInfo, func() {
		LogInfo("Applying state migration", Fields{"version": 1})
	})

	assert.Contains(t, out, "Applying state migration")
	assert.Contains(t, out, "version=1")
}

func TestLogDebugRespectsLevel(t *testing.T) {
	out := captureLogs(t, slog.LevelInfo, func() {
		LogDebug("backend request completed", Fields{"status": 200})
	})
	assert.Empty(t, out)

	out = captureLogs(t, slog.LevelDebug, func() {
		LogDebug("backend request completed", Fields{"status": 200})
	})
	assert.Contains(t, out, "status=200")
}

func TestSetupLoggerFormats(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	require.NoError(t, SetupLogger(slog.LevelInfo, "console"))
	require.NoError(t, SetupLogger(slog.LevelInfo, "json"))
}
