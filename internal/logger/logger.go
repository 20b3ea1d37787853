// Package logger builds the zerolog logger shared by the CLI and the
// scheduler's debug output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a JSON logger on stderr at the given level.
func New(level string) (zerolog.Logger, error) {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a JSON logger writing to w. Timestamps follow the
// process-wide zerolog.TimeFieldFormat, which the caller owns.
func NewWithWriter(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	logger := zerolog.New(w).
		With().
		Timestamp().
		Logger()

	return logger.Level(lvl), nil
}

// ParseLevel accepts zerolog level names case-insensitively. Empty means
// DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
