package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's own logger; the global default is left alone.
// Unknown levels fall back to info, unknown formats to text. Every record
// carries the process name so renderer and host logs can share a sink.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, opts)
	default:
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler).With("process", "renderer")
}
