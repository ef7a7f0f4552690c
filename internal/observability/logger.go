package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/geocoder89/todohub/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the JSON logger used by the service. Records always go
// to stdout; when cfg.LogFile is set they are also written to a rotating
// file. The returned close func releases that file.
func NewLogger(cfg config.Config) (*slog.Logger, func() error) {
	if cfg.LogFile == "" {
		return newLogger(os.Stdout, cfg.Env, cfg.LogLevel), func() error { return nil }
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    100, // megabytes
		MaxAge:     7,   // days
		MaxBackups: 14,
		LocalTime:  true,
		Compress:   true,
	}

	return newLogger(io.MultiWriter(os.Stdout, file), cfg.Env, cfg.LogLevel), file.Close
}

func newLogger(w io.Writer, env, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(env, level),
	})

	return slog.New(NewContextHandler(handler))
}

func parseLevel(env, level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if env == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
