package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/fpt-software/website-api/internal/config"
	"github.com/natefinch/lumberjack"
)

// Setup configures the global slog logger based on environment.
// When cfg.File is set, records are also written to a size-rotated file.
func Setup(env string, cfg config.LogConfig) {
	opts := &slog.HandlerOptions{
		Level: levelFor(env),
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		})
	}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))

	slog.Info("logger initialized", "env", env, "level", opts.Level.Level().String(), "file", cfg.File)
}

func levelFor(env string) slog.Level {
	switch env {
	case "local", "dev", "development":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
