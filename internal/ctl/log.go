package ctl

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// logger is the CLI logger; console output on stderr.
var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}

// SetLogLevel adjusts the CLI log level: debug|info|warn|error. Unknown values
// fall back to info.
func SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	logger = logger.Level(lvl)
}

// SetOutput redirects CLI log output, keeping the current level.
func SetOutput(w io.Writer) {
	lvl := logger.GetLevel()
	logger = newLogger(w).Level(lvl)
}
