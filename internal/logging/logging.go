// Package logging configures the application-wide zerolog logger.
//
// The live-attempt UI owns the terminal, so interactive commands log to a
// file under the data directory instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup builds a logger writing to w at the level named by the
// TEXTQUIZ_LOG_LEVEL env var (default info).
func Setup(w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(os.Getenv("TEXTQUIZ_LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// SetupFile builds a logger appending to a log file next to the given
// data path. Falls back to a disabled logger if the file cannot be
// opened; logging must never take the app down.
func SetupFile(dataPath string) (zerolog.Logger, func() error) {
	logPath := filepath.Join(filepath.Dir(dataPath), "textquiz.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", logPath, err)
		return zerolog.Nop(), func() error { return nil }
	}
	return Setup(f), f.Close
}
