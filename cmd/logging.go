package cmd

import (
	"io"
	"log/slog"

	"github.com/labstack/gommon/log"
)

var slogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var gommonLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
}

// NewLogger builds the process wide slog logger.
func NewLogger(cfg LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slogLevels[cfg.Level]}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", "dispatch")
}

// EchoLogLevel maps the configured level onto echo's gommon logger.
func EchoLogLevel(cfg LoggingConfig) log.Lvl {
	if lvl, ok := gommonLevels[cfg.Level]; ok {
		return lvl
	}
	return log.INFO
}
