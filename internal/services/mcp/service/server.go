package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/platform/branding"
	"github.com/louisbranch/adpulse/internal/services/mcp/domain"
	"github.com/louisbranch/adpulse/internal/table"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// Transport kinds.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config defines the inputs for the MCP service.
type Config struct {
	// Transport is stdio or http.
	Transport string
	// HTTPAddr is the listen address for the http transport.
	HTTPAddr string
	// AllowedHosts extends the loopback hosts accepted by the http transport.
	AllowedHosts []string
	// PageSize is the default campaigns_list page size.
	PageSize int
}

// Server hosts the campaign MCP tools.
type Server struct {
	mcpServer *mcp.Server
}

type serverOptions struct {
	source domain.RecordSource
	now    func() time.Time
}

// newServer builds an MCP server with every campaign tool and resource
// registered.
func newServer(pageSize int, opts serverOptions) (*Server, error) {
	if pageSize <= 0 {
		pageSize = table.DefaultPageSize
	}
	if opts.source == nil {
		opts.source = campaign.Records
	}
	if opts.now == nil {
		opts.now = time.Now
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    branding.AppName + "-mcp",
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: "Query the " + branding.AppName + " campaigns table. Filters use AIP-160 equality terms joined by AND; order_by uses AIP-132.",
	})

	registrar := mcpServerRegistrationAdapter{server: mcpServer}
	if err := registerCampaignTools(registrar, opts.source, pageSize, opts.now); err != nil {
		return nil, fmt.Errorf("register campaign tools: %w", err)
	}
	registerCampaignResources(registrar, opts.source)
	return &Server{mcpServer: mcpServer}, nil
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation or client disconnect.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server, err := newServer(cfg.PageSize, serverOptions{})
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.runWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.runWithHTTP(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport serves one MCP session over transport.
func (s *Server) runWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}
	if transport == nil {
		return errors.New("mcp transport is required")
	}
	slog.InfoContext(ctx, "mcp serving", slog.String("transport", fmt.Sprintf("%T", transport)))
	err := s.mcpServer.Run(ctx, transport)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
