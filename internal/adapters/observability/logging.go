package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout and, when logFile is
// non-empty, teeing every line into that file in append mode so a scrape
// leaves a persistent trail. APP_ENV=dev (or development) uses a
// human-friendly console writer; otherwise the console stream is JSON.
// The log file always gets JSON.
func NewLogger(env, logFile string) zerolog.Logger {
	var console io.Writer = os.Stdout
	if env == "dev" || env == "development" {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	out := console
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = zerolog.MultiLevelWriter(console, f)
		}
		// on open failure keep console-only logging; the scrape itself
		// must not die over a log file
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
