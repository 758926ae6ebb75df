package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps debug|info|warn|error (any case) to a slog level.
// Empty input means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Setup installs a Handler on out as the default slog logger and returns it.
func Setup(out io.Writer, level slog.Level, noColor bool) *slog.Logger {
	logger := slog.New(NewHandler(out, level, noColor))
	slog.SetDefault(logger)
	return logger
}

// SetupFile appends log output to the file at path and installs it as the
// default logger. The returned close function flushes and closes the file.
func SetupFile(path string, level slog.Level) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return Setup(f, level, true), f.Close, nil
}
