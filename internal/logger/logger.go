package logger

import (
	"log/slog"
	"os"
	"sync"
)

// Level controls which messages are emitted
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

var (
	mu      sync.RWMutex
	current = newSlogLogger(LevelWarn)
)

// Logger is the logging interface used throughout the application
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// SetLevel adjusts the global log level
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	current = newSlogLogger(level)
}

func get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) { get().Debug(msg, args...) }

// Info logs an info message
func Info(msg string, args ...interface{}) { get().Info(msg, args...) }

// Warn logs a warning
func Warn(msg string, args ...interface{}) { get().Warn(msg, args...) }

// Error logs an error
func Error(msg string, args ...interface{}) { get().Error(msg, args...) }

// WithField returns a logger with a single field attached
func WithField(key string, value interface{}) Logger {
	return get().WithField(key, value)
}

// WithFields returns a logger with multiple fields attached
func WithFields(fields map[string]interface{}) Logger {
	return get().WithFields(fields)
}

type slogLogger struct {
	l *slog.Logger
}

func newSlogLogger(level Level) *slogLogger {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	default:
		slogLevel = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	return &slogLogger{l: slog.New(handler)}
}

func (s *slogLogger) Debug(msg string, args ...interface{}) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...interface{})  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...interface{})  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...interface{}) { s.l.Error(msg, args...) }

func (s *slogLogger) WithField(key string, value interface{}) Logger {
	return &slogLogger{l: s.l.With(key, value)}
}

func (s *slogLogger) WithFields(fields map[string]interface{}) Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &slogLogger{l: s.l.With(args...)}
}
