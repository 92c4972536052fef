// Package clog builds the slog.Logger the seqparse CLI's commands log
// through, the same level/format/output knobs
// dittofs's internal/logger package exposes, trimmed to a single
// constructor since this CLI is a one-shot command rather than a
// long-running server with reconfigurable logging.
package clog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the logger New builds.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

// New builds a slog.Logger per cfg. Output "stdout"/"stderr" (or empty)
// select the corresponding stream; anything else is treated as a file path
// opened for append.
func New(cfg Config) (*slog.Logger, error) {
	w, err := resolveOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

func resolveOutput(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log output %q: %w", output, err)
		}
		return f, nil
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
