package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New creates the process logger. Verbosity comes from LOG_LEVEL (ERROR,
// WARN, INFO, DEBUG, TRACE), defaulting to INFO. Set LOG_FORMAT=console for
// human-readable output during development.
func New() zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "ERROR":
		level = zerolog.ErrorLevel
	case "WARN":
		level = zerolog.WarnLevel
	case "DEBUG":
		level = zerolog.DebugLevel
	case "TRACE":
		level = zerolog.TraceLevel
	}

	var logger zerolog.Logger
	if os.Getenv("LOG_FORMAT") == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
