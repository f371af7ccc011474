package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"history/internal/app/server/config"
)

// New builds the process logger for env: colored text for local runs,
// JSON otherwise. Debug is enabled everywhere except prod.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel is New with an explicit level ("debug", "info", "warn",
// "error"); an empty or unknown level keeps the env default.
func NewWithLevel(env, level string) *slog.Logger {
	return NewWriter(os.Stdout, env, level)
}

// NewWriter is NewWithLevel writing to out.
func NewWriter(out io.Writer, env, level string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog(out, parseLevel(level, slog.LevelDebug))
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelDebug)}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelInfo)}),
		)
	}

	return log
}

func setupPrettySlog(out io.Writer, level ...slog.Level) *slog.Logger {
	lvl := slog.LevelDebug
	if len(level) > 0 {
		lvl = level[0]
	}

	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: lvl},
	}
	return slog.New(opts.NewPrettyHandler(out))
}

func parseLevel(s string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}
