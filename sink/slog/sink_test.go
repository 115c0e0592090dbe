package slog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/multilog"
)

func TestSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(Config{Writer: &buf, MinLevel: multilog.LevelDebug})

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Deliver(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelWarning,
		Message: "quota low",
		Params:  multilog.Params{multilog.Int("id", 102), multilog.Dur("wait", time.Second)},
		Caller:  multilog.Caller{Function: "check", Line: 3, File: "quota"},
	}))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), buf.String())
	assert.Equal(t, "WARN", m["level"])
	assert.Equal(t, "quota low", m["msg"])
	assert.Equal(t, "2025-01-01T00:00:00Z", m["ts"])
	assert.Equal(t, float64(102), m["id"])
	caller, ok := m["caller"].(map[string]any)
	require.True(t, ok, "caller group missing: %v", m)
	assert.Equal(t, "quota", caller["file"])
	assert.Equal(t, "check", caller["function"])
	assert.Equal(t, float64(3), caller["line"])
}

func TestSink_TextAndLevelVar(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(Config{Writer: &buf, MinLevel: multilog.LevelError, Format: FormatText})

	require.NoError(t, s.Deliver(multilog.Entry{Level: multilog.LevelInfo, Message: "hidden"}))
	assert.Empty(t, buf.String())

	s.SetMinLevel(multilog.LevelInfo)
	require.NoError(t, s.Deliver(multilog.Entry{Level: multilog.LevelInfo, Message: "shown"}))
	assert.True(t, strings.Contains(buf.String(), "msg=shown"), buf.String())
}

func TestSink_WithoutLevelVar(t *testing.T) {
	var buf bytes.Buffer
	s := New(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s.SetMinLevel(multilog.LevelError) // no-op

	require.NoError(t, s.Deliver(multilog.Entry{Level: multilog.LevelDebug, Message: "kept"}))
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}
