// Package logging provides the named, levelled key/value logger used by the
// parser and the kaleido command.
//
//	logger := logging.New("kaleido").WithLevel(logging.LevelDebug)
//	logger.Debug("parsed definition", "name", "fib", "params", 1)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a configuration string to a Level. Unknown strings
// yield LevelInfo and ok == false.
func ParseLevel(s string) (level Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger is an immutable logger; the With* methods return modified copies.
type Logger struct {
	name   string
	level  Level
	out    io.Writer
	fields []any
	sl     *slog.Logger
}

// New creates an info-level logger named name that writes to stderr.
func New(name string) *Logger {
	return build(name, LevelInfo, os.Stderr, nil)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return build("", LevelError, io.Discard, nil)
}

func build(name string, level Level, out io.Writer, fields []any) *Logger {
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level.slogLevel()})
	sl := slog.New(h)
	if name != "" {
		sl = sl.With("logger", name)
	}
	if len(fields) > 0 {
		sl = sl.With(fields...)
	}
	return &Logger{name: name, level: level, out: out, fields: fields, sl: sl}
}

// Name returns the logger name.
func (l *Logger) Name() string { return l.name }

// Level returns the minimum level that is written.
func (l *Logger) Level() Level { return l.level }

// WithLevel returns a copy that writes entries at level or above.
func (l *Logger) WithLevel(level Level) *Logger {
	return build(l.name, level, l.out, l.fields)
}

// WithOutput returns a copy writing to w.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return build(l.name, l.level, w, l.fields)
}

// WithField returns a copy that adds key=value to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := append(append([]any(nil), l.fields...), key, value)
	return build(l.name, l.level, l.out, fields)
}

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level Level) bool { return level >= l.level }

// Debug logs a debug message with key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.sl.Debug(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.sl.Info(msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.sl.Warn(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.sl.Error(msg, keysAndValues...)
}
