// =============================================================================
// Community Order Filter - Logger
// =============================================================================
//
// A small leveled logger over the standard log package. It satisfies the
// converter's Logger interface and is shared by the CLI, the HTTP server
// and the scheduled jobs.
//
// OUTPUT FORMAT:
//   2026/01/02 15:04:05 [INFO] message
//
// =============================================================================

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level orders message severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Logger writes messages at or above its level.
type Logger struct {
	level Level
	out   *log.Logger
	close func() error
}

// New returns a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", log.LstdFlags),
		close: func() error { return nil },
	}
}

// Open returns a logger writing to path, or to stderr when path is empty.
// The log file is appended to and its directory created if needed.
func Open(path string, level Level) (*Logger, error) {
	if path == "" {
		return New(os.Stderr, level), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(f, level)
	l.close = f.Close
	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	return l.close()
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) logf(level Level, msg string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("["+level.String()+"] "+msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.logf(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.logf(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.logf(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.logf(LevelError, msg, args...) }

// Printf lets the logger stand in where a log.Printf-style sink is
// expected; messages go out at info level.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}
