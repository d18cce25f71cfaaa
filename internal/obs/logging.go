// Package obs wires up zerolog, the structured logger threaded through the
// index builder, the HTTP server, and the CLI.
package obs

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog.Logger writing to w at the given level. An
// unparseable level falls back to info rather than failing startup over a
// logging typo. pretty switches to zerolog's human-readable console writer,
// meant for local development, not production output.
func NewLogger(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Default builds the standard stderr logger at info level.
func Default() zerolog.Logger {
	return NewLogger(os.Stderr, "info", false)
}
