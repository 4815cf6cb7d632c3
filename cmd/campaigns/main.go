// Package main lists or exports campaigns from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	campaignscmd "github.com/louisbranch/adpulse/internal/cmd/campaigns"
	"github.com/louisbranch/adpulse/internal/platform/config"
)

func main() {
	cfg, err := campaignscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := campaignscmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("campaigns: %v", err)
	}
}
