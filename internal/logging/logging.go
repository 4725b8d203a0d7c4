// Package logging sets up the slog default used by the pipeline and the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init replaces the slog default. Output goes to w[0] when given and to stderr
// otherwise. format "json" selects the JSON handler; anything else is text.
func Init(level slog.Level, format string, w ...io.Writer) {
	var out io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		out = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	h := slog.Handler(slog.NewTextHandler(out, opts))
	if format == "json" {
		h = slog.NewJSONHandler(out, opts)
	}

	slog.SetDefault(slog.New(h))
}

// ParseLevel maps debug, info, warn and error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if e := level.UnmarshalText([]byte(strings.TrimSpace(s))); e != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}

	return level, nil
}

// New tags the current default logger with the pipeline stage, e.g. "fetch".
func New(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
