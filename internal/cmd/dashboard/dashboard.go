// Package dashboard parses dashboard command flags and serves the web UI.
package dashboard

import (
	"context"
	"flag"
	"fmt"
	"time"

	platformcmd "github.com/louisbranch/adpulse/internal/platform/cmd"
	"github.com/louisbranch/adpulse/internal/services/dashboard"
)

// Config holds the dashboard command configuration.
type Config struct {
	HTTPAddr        string        `env:"DASHBOARD_ADDR"    envDefault:":8090"`
	DBPath          string        `env:"DASHBOARD_DB_PATH" envDefault:"data/dashboard.db"`
	PageSize        int           `env:"TABLE_PAGE_SIZE"   envDefault:"5"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"  envDefault:"30s"`
	platformcmd.Observability
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "theme preference database path (empty disables persistence)")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "initial campaigns table page size")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", cfg.RefreshInterval, "live metrics refresh interval")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dashboard server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceDashboard, cfg.Observability, func(ctx context.Context) error {
		server, err := dashboard.NewServer(ctx, dashboard.Config{
			HTTPAddr:        cfg.HTTPAddr,
			DBPath:          cfg.DBPath,
			PageSize:        cfg.PageSize,
			RefreshInterval: cfg.RefreshInterval,
		})
		if err != nil {
			return fmt.Errorf("init dashboard server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve dashboard: %w", err)
		}
		return nil
	})
}
