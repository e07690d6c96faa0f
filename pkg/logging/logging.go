// Package logging holds the process logger and the structured completion
// events emitted by benchmark phases and trials.
package logging

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/eunmann/membench/internal/logctx"
)

var (
	logger *zerolog.Logger
	pretty atomic.Bool
)

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger = &l
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Init configures the process logger and makes it the default for
// contexts that carry none. debug lowers the level to Debug; human
// switches to console output and turns on the _h companion fields of
// completion events.
func Init(debug bool, human bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	pretty.Store(human)

	l := logctx.NewConfiguredLogger(debug, human)
	logger = &l
	logctx.SetDefaultLogger(l)
}

// L returns the process logger.
func L() *zerolog.Logger {
	return logger
}

// SetLogger replaces the process logger. Tests use it to capture output.
func SetLogger(l zerolog.Logger) {
	logger = &l
}

// IsPrettyMode reports whether human-readable companion fields are on.
func IsPrettyMode() bool {
	return pretty.Load()
}

// SetPrettyMode toggles human-readable companion fields.
func SetPrettyMode(on bool) {
	pretty.Store(on)
}
