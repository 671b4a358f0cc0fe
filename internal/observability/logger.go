package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI logger: human-readable console output, debug level when
// verbose and warn otherwise.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
