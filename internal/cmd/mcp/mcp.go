// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"strings"

	platformcmd "github.com/louisbranch/adpulse/internal/platform/cmd"
	"github.com/louisbranch/adpulse/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string   `env:"MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string   `env:"MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	AllowedHosts []string `env:"MCP_ALLOWED_HOSTS" envSeparator:","`
	PageSize     int      `env:"TABLE_PAGE_SIZE"   envDefault:"5"`
	platformcmd.Observability
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "default campaigns_list page size")
	fs.Func("allowed-hosts", "comma-separated non-loopback hosts accepted by the HTTP transport", func(value string) error {
		cfg.AllowedHosts = splitList(value)
		return nil
	})
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, cfg.Observability, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			Transport:    cfg.Transport,
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
			PageSize:     cfg.PageSize,
		})
	})
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
