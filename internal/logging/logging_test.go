package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG", slog.LevelWarn))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, ParseLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, ParseLevel("loud", slog.LevelWarn))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf, slog.LevelInfo, "json")
	logger.Debug("hidden")
	logger.Info("poll", "notified", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "poll", entry["msg"])
	assert.InDelta(t, 2, entry["notified"], 0)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, slog.LevelWarn, "").Warn("careful", "k", "v")

	assert.Contains(t, buf.String(), "msg=careful")
	assert.Contains(t, buf.String(), "k=v")
}
