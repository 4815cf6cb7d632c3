// Package logging configures the process-wide slog logger.
//
// Terminals get colorized tint output; anything else gets JSON on the same
// writer so log shippers can parse it.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Config selects the log level and format.
type Config struct {
	// Level is one of debug, info, warn or error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format is auto, text or json. Auto picks text on a terminal.
	Format string `env:"LOG_FORMAT" envDefault:"auto"`
}

// Level is shared by every handler built here so it can change at runtime.
var Level = &slog.LevelVar{}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "err", "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds a handler writing to w.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	Level.Set(ParseLevel(cfg.Level))
	if useText(w, cfg.Format) {
		return tint.NewHandler(w, &tint.Options{
			Level:      Level,
			TimeFormat: "15:04:05.000",
			NoColor:    !isTerminal(w),
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level})
}

// Setup installs a stderr logger as the slog default for service.
func Setup(service string, cfg Config) *slog.Logger {
	logger := slog.New(NewHandler(os.Stderr, cfg)).With("service", service)
	slog.SetDefault(logger)
	return logger
}

func useText(w io.Writer, format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return true
	case "json":
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
