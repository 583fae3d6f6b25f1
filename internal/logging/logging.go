// Package logging configures the process-wide zerolog logger used by pytoapk.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger for the given verbosity.
// 0 shows warnings and errors, 1 adds info, 2 adds debug, anything higher adds trace.
// A nil writer logs to stderr.
func Setup(verbosity int, w io.Writer) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    w != os.Stderr,
	}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Msg("logger initialized")
}

// Get returns a logger tagged with the given component name.
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Operation logs the start of an operation at debug level and returns a
// function that logs its completion with the elapsed time.
func Operation(logger zerolog.Logger, name string) func() {
	start := time.Now()
	logger.Debug().Str("operation", name).Msg("operation started")
	return func() {
		logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("operation completed")
	}
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
