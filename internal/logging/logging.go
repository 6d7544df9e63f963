package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Unknown or empty levels fall back to info.
// When pretty is set the output is human readable, otherwise one JSON object per line.
func Setup(level string, w io.Writer, pretty bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("Logger initialized")
}

// ParseLevel maps a configured level name to a zerolog level
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// VerbosityLevel maps a -v count to a level: warn, info, debug, then trace
func VerbosityLevel(verbosity int) string {
	switch verbosity {
	case 0:
		return "warn"
	case 1:
		return "info"
	case 2:
		return "debug"
	default:
		return "trace"
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
