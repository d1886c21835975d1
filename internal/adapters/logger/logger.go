// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/grove/internal/core/ports"
)

// metadater describes an error that carries structured metadata. This
// matches the Metadata() method provided by zerr.Error.
type metadater interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog. The logger is constructed
// before configuration is loaded, so output format can be switched later
// with SetJSON.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	output io.Writer
}

// New creates a text Logger writing to stderr.
func New() *Logger {
	return NewWithOutput(os.Stderr, false)
}

// NewWithOutput creates a Logger writing to w.
func NewWithOutput(w io.Writer, json bool) *Logger {
	return &Logger{logger: slog.New(newHandler(w, json)), output: w}
}

// SetJSON switches between JSON and text output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(newHandler(l.output, enable))
}

func newHandler(w io.Writer, json bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. Metadata attached via zerr.With is unpacked into
// structured attributes instead of being flattened into the message.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var attrs []any
	if md, ok := err.(metadater); ok {
		for k, v := range md.Metadata() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	l.logger.Error(err.Error(), attrs...)
}

// Discard returns a Logger that drops everything. Useful in tests that do
// not assert on log output.
func Discard() ports.Logger {
	return NewWithOutput(io.Discard, false)
}

var _ ports.Logger = (*Logger)(nil)
