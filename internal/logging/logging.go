package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Diagnostics go to stderr so
// that stdout stays clean for report output; verbose enables debug events.
func Setup(verbose bool) {
	SetupWriter(os.Stderr, verbose)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: w != os.Stderr}).
		With().Timestamp().Logger()
}

// SetupFile appends logs to a file in the OS temp folder instead of stderr.
// The interactive UI owns the terminal, so it cannot log there.
func SetupFile(name string, verbose bool) (string, io.Closer, error) {
	path := filepath.Join(os.TempDir(), name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("opening log file: %w", err)
	}
	SetupWriter(f, verbose)
	return path, f, nil
}

// Discard silences all logging, e.g. while a full-screen UI owns the terminal.
func Discard() {
	log.Logger = zerolog.Nop()
}
