// Package main starts the browser-facing dashboard service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	dashboardcmd "github.com/louisbranch/adpulse/internal/cmd/dashboard"
	"github.com/louisbranch/adpulse/internal/platform/config"
)

func main() {
	cfg, err := dashboardcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dashboardcmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
