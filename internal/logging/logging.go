package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level converts a config level name to a zerolog level.
// Unknown values default to info.
func Level(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewFile returns a logger writing JSON lines to a rotating file. The
// terminal UI owns stdout, so the TUI logs here.
func NewFile(path, level string) (zerolog.Logger, io.Closer) {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	logger := zerolog.New(w).
		Level(Level(level)).
		With().
		Timestamp().
		Logger()

	return logger, w
}

// NewConsole returns a human-readable logger for CLI subcommands.
func NewConsole(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(Level(level)).
		With().
		Timestamp().
		Logger()
}

// Component tags a logger with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
