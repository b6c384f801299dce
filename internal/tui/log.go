// Package tui provides terminal user interface support shared by the CLI:
// logging that stays quiet while a bubbletea program owns the terminal,
// with optional rotated file output for debugging drag sessions.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// consoleHandler writes bare messages to the terminal. Debug records pass
// only when the DEBUG environment variable is set, and everything is
// suppressed while quiet mode is on.
type consoleHandler struct {
	writer    io.Writer
	debugMode bool
	quiet     *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(_ string) slog.Handler      { return h }

// fanoutHandler sends records to every handler that accepts them.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: out}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: out}
}

// rotatedWriter builds a lumberjack writer for logFilePath, with limits
// overridable through DRAGSORT_LOG_MAX_SIZE, DRAGSORT_LOG_MAX_BACKUPS and
// DRAGSORT_LOG_MAX_AGE.
func rotatedWriter(logFilePath string) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}
	if v, err := strconv.Atoi(os.Getenv("DRAGSORT_LOG_MAX_SIZE")); err == nil && v > 0 {
		w.MaxSize = v
	}
	if v, err := strconv.Atoi(os.Getenv("DRAGSORT_LOG_MAX_BACKUPS")); err == nil && v >= 0 {
		w.MaxBackups = v
	}
	if v, err := strconv.Atoi(os.Getenv("DRAGSORT_LOG_MAX_AGE")); err == nil && v > 0 {
		w.MaxAge = v
	}
	return w
}

// Logger is the CLI's structured logger. Console output can be silenced
// while a TUI program owns the terminal; the file handler, when
// configured, always records at debug level.
type Logger struct {
	logger    *slog.Logger
	logWriter io.WriteCloser
	quiet     bool
}

// NewLogger creates a console-only logger. Debug messages are enabled when
// the DEBUG environment variable is set.
func NewLogger() *Logger {
	l, _ := NewLoggerWithFile("")
	return l
}

// NewLoggerWithFile creates a logger that additionally writes rotated,
// timestamped records to logFilePath when it is non-empty.
func NewLoggerWithFile(logFilePath string) (*Logger, error) {
	l := &Logger{}

	handlers := []slog.Handler{&consoleHandler{
		writer:    os.Stdout,
		debugMode: os.Getenv("DEBUG") != "",
		quiet:     &l.quiet,
	}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		w := rotatedWriter(logFilePath)
		l.logWriter = w
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	l.logger = slog.New(&fanoutHandler{handlers: handlers})
	return l, nil
}

// Slog exposes the underlying slog logger, for handing to the engine.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// SetQuiet suppresses console output; used while the TUI is running.
func (l *Logger) SetQuiet(quiet bool) {
	l.quiet = quiet
}

// Info writes an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info(sprintf(format, args...))
}

// Warn writes a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger.Warn(sprintf(format, args...))
}

// Error writes an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error(sprintf(format, args...))
}

// Debug writes a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug(sprintf(format, args...))
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.logWriter != nil {
		return l.logWriter.Close()
	}
	return nil
}
