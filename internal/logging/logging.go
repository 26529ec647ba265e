package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"surveytoolkit/internal/config"
)

// Init builds the process logger and installs it as the slog default.
// With a log file configured, records go to stdout and to a rotated file.
func Init(cfg config.LogConfig) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSize,
			MaxAge:     cfg.FileMaxAge,
			MaxBackups: cfg.FileMaxBackups,
			Compress:   cfg.Compress,
		})
	}
	logger := New(w, cfg.Level, cfg.IncludeSource)
	slog.SetDefault(logger)
	return logger
}

// New returns a JSON logger writing to w
func New(w io.Writer, level string, includeSource bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     LevelFromString(level),
		AddSource: includeSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
