// Package logging builds the application logger. The terminal belongs to
// the UI, so log lines go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const Prefix = "tasklist"

// ParseLevel maps a config string to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// NewWithWriter returns a logfmt logger writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
}

// Open returns a logger appending to path and a closer for the file. An
// empty path discards everything.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewWithWriter(io.Discard, level), io.NopCloser(nil), nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(f, level), f, nil
}
