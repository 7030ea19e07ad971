// Package logging builds the slog.Logger shared by the commands.
//
// Logs go to stderr so that stdout stays reserved for results. Text output is
// the default; JSON is meant for runs driven by a workflow manager.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config selects the level and encoding of a logger. The zero value logs Info
// and above as text.
type Config struct {
	Level slog.Level
	JSON  bool
	Quiet bool // discard everything below Error
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	level := cfg.Level
	if cfg.Quiet && level < slog.LevelError {
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
