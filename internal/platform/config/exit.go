package config

import (
	"fmt"
	"log/slog"
	"os"
)

var exit = os.Exit

// Exitf logs a formatted error and exits with code 1.
func Exitf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Error(msg)
	fmt.Fprintln(os.Stderr, msg)
	exit(1)
}
