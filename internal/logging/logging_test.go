package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "info": slog.LevelInfo, " WARN ": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, e := ParseLevel(in)
		assert.Nil(t, e, in)
		assert.Equal(t, want, got, in)
	}

	_, e := ParseLevel("loud")
	assert.NotNil(t, e)
}

func TestInit(t *testing.T) {
	saved := slog.Default()
	defer slog.SetDefault(saved)

	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)
	New("fetch").Debug("hidden")
	New("fetch").Info("sent", "rows", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"fetch"`)
	assert.Contains(t, buf.String(), `"rows":3`)

	buf.Reset()
	Init(slog.LevelDebug, "text", &buf)
	New("pipeline").Debug("dropped")
	assert.Contains(t, buf.String(), "component=pipeline")
}
