package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lixenwraith/sense-dice/config"
)

// setupLogging builds the process logger
// The terminal owns stdout while playing, so logs go to a file; an empty
// path discards and "-" writes text to stderr
func setupLogging(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	level, err := (&config.Config{Log: cfg}).SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	noop := func() error { return nil }

	switch cfg.File {
	case "":
		return slog.New(slog.DiscardHandler), noop, nil
	case "-":
		return slog.New(slog.NewTextHandler(stderr, opts)), noop, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f.Close, nil
}
