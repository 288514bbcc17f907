package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/wordlist/pkg/config"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewJSONFormat(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("entry added", slog.String("german", "Hund"))
	logger.Debug("hidden")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "entry added", m["msg"])
	assert.Equal(t, "Hund", m["german"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTextFormatIncludesSource(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger := NewWithWriter(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("source test")
	assert.Contains(t, buf.String(), "source=")
	assert.Contains(t, buf.String(), "source test")
}

func TestNewSetsDefault(t *testing.T) {
	restoreDefault(t)
	logger := New(config.LogConfig{Level: "info", Format: "json"})
	assert.Same(t, logger.Handler(), slog.Default().Handler())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}
