package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: "render", Output: &buf})

	l.With("run_id", "abc").Info("chart rendered", "format", "png")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=render")
	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "format=png")
	assert.NotContains(t, out, "hidden")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: "churnchart", Output: &buf}).WithComponent("telegram")

	l.Debug("sending")
	assert.Contains(t, buf.String(), "subcomponent=telegram")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
