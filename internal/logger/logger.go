// Package logger sets up the process-wide zerolog logger
package logger

import (
	"io"
	"os"
	"time"

	"github.com/alexbotov/rdcheckout/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger to write to stderr
func Init(cfg config.LoggingConfig) zerolog.Logger {
	return InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter configures the global logger to write to w
func InitWithWriter(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	if cfg.Format == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		// JSON (default)
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
	return log.Logger
}

// ParseLevel maps a configured level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
