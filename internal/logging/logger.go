// Package logging provides the shared structured logger. Messages go
// to stderr so they never corrupt the presentation being drawn on
// stdout; the level is warn unless verbose output is requested.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Level:           log.WarnLevel,
})

// SetVerbose lowers the level to debug.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// SetOutput redirects log output, for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debug logs a debug message with key-value context.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Info logs an informational message with key-value context.
func Info(msg string, keyvals ...any) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning with key-value context.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error with key-value context.
func Error(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
}

// With returns a logger carrying extra key-value context.
func With(keyvals ...any) *log.Logger {
	return logger.With(keyvals...)
}
