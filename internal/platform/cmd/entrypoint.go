// Package cmd holds the startup plumbing shared by adpulse commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/louisbranch/adpulse/internal/platform/config"
	"github.com/louisbranch/adpulse/internal/platform/logging"
	"github.com/louisbranch/adpulse/internal/platform/otel"
	"github.com/louisbranch/adpulse/internal/platform/timeouts"
)

// Service identifiers for startup telemetry and CLI naming consistency.
const (
	ServiceDashboard = "dashboard"
	ServiceMCP       = "mcp"
	ServiceCampaigns = "campaigns"
)

// Observability is embedded by command configs to pick up logging and
// tracing settings from the environment.
type Observability struct {
	Log  logging.Config
	OTel otel.Config
}

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures logging and tracing, then executes run.
func RunWithTelemetry(ctx context.Context, service string, obs Observability, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, obs, RunOptions{}, run)
}

// RunWithTelemetryAndOptions configures logging and tracing, then executes run.
func RunWithTelemetryAndOptions(ctx context.Context, service string, obs Observability, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Setup(service, obs.Log)

	shutdown, err := otel.Setup(ctx, service, obs.OTel)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = timeouts.Shutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("otel shutdown", slog.Any("error", err))
		}
	}()
	return run(ctx)
}
