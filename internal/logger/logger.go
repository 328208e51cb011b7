// Package logger constructs the application's zerolog logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger for the given level ("debug", "info", ...) and format
// ("json" or "console"). Unknown levels fall back to info.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out = os.Stderr
	var log zerolog.Logger
	if format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(out)
	}
	return log.Level(lvl).With().Timestamp().Logger()
}
