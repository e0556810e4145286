// Package logging builds the process-wide slog logger from LOG_* settings.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, handler format and destination. An empty File
// logs to stderr.
type Options struct {
	Level  string
	Format string
	File   string
}

type handlerFactory func(io.Writer, *slog.HandlerOptions) slog.Handler

// Unknown formats get JSON.
var formats = map[string]handlerFactory{
	"json": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
	"text": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
}

// Unknown levels get info.
var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New builds a logger without touching the slog default.
func New(opts Options) (*slog.Logger, error) {
	out, err := openSink(opts.File)
	if err != nil {
		return nil, err
	}
	return slog.New(buildHandler(opts, out)), nil
}

// Init builds a logger and installs it as the slog default.
func Init(opts Options) (*slog.Logger, error) {
	logger, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func buildHandler(opts Options, out io.Writer) slog.Handler {
	factory, ok := formats[normalize(opts.Format)]
	if !ok {
		factory = formats["json"]
	}
	return factory(out, &slog.HandlerOptions{Level: parseLogLevel(opts.Level)})
}

func parseLogLevel(level string) slog.Level {
	if l, ok := levels[normalize(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// openSink returns stderr, or a rotating file (5 MB x 5, kept 14 days).
func openSink(path string) (io.Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
