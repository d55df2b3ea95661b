// Package logger provides the leveled logger used across the pipeline.
package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

// Level controls which messages are emitted.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the logging interface threaded through pipeline stages.
// The context parameter is accepted for future correlation (job ids in
// log lines are currently the caller's responsibility).
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}

// Compile-time interface compliance check.
var _ Logger = (*stdLogger)(nil)

// stdLogger writes leveled lines through the standard library logger.
type stdLogger struct {
	logger *log.Logger
	level  Level
}

// New creates a Logger writing to w at the given level.
func New(w io.Writer, level Level) Logger {
	return &stdLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// Default returns a stderr logger at info level.
func Default() Logger {
	return New(os.Stderr, LevelInfo)
}

func (l *stdLogger) Debug(_ context.Context, msg string, args ...any) {
	l.printf(LevelDebug, "[DEBUG] ", msg, args)
}

func (l *stdLogger) Info(_ context.Context, msg string, args ...any) {
	l.printf(LevelInfo, "[INFO] ", msg, args)
}

func (l *stdLogger) Warn(_ context.Context, msg string, args ...any) {
	l.printf(LevelWarn, "[WARN] ", msg, args)
}

func (l *stdLogger) Error(_ context.Context, msg string, args ...any) {
	l.printf(LevelError, "[ERROR] ", msg, args)
}

func (l *stdLogger) printf(level Level, prefix, msg string, args []any) {
	if level < l.level {
		return
	}
	l.logger.Printf(prefix+msg, args...)
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() Logger {
	return New(io.Discard, LevelError+1)
}
