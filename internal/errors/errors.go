// Package errors holds the fatal-exit helpers for the command boundary. The
// CLI policy is log first, then print a uniform message to stderr, then exit;
// library code keeps returning plain errors.
package errors

import (
	"fmt"
	"os"

	"github.com/BBBtp/Tracker/internal/logger"
)

// Format renders an error the way the CLI prints it on stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error, prints it to stderr and exits with code 1. A nil
// error does nothing, so call sites can pass errors through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for an inline message.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
