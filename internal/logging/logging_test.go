package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat("TINT"))
	assert.Equal(t, FormatText, ParseFormat("human"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatAuto, ParseFormat(""))
	assert.Equal(t, FormatAuto, ParseFormat("xml"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn", slog.LevelInfo))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", slog.LevelInfo))
	assert.Equal(t, slog.LevelDebug, ParseLevel("loud", slog.LevelDebug))
}

func TestNewHandlerJSONWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, FormatAuto, slog.LevelInfo))

	log.Debug("hidden")
	log.Info("shown", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(1), rec["n"])
}

func TestNewHandlerText(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, FormatText, slog.LevelInfo))

	log.Info("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
