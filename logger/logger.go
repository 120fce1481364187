package logger

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// New builds the process logger. Command output goes to stdout, so the
// logger is meant to write to stderr.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "wdc",
	}), nil
}
