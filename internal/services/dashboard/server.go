package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/platform/timeouts"
	dashboardsqlite "github.com/louisbranch/adpulse/internal/services/dashboard/storage/sqlite"
)

// Config defines the inputs for the dashboard process.
type Config struct {
	HTTPAddr string
	// DBPath locates the preference database. Empty disables persistence.
	DBPath string
	// PageSize is the initial campaigns table page size.
	PageSize int
	// RefreshInterval drives both the live metrics feed and client polling.
	RefreshInterval time.Duration
}

// Server hosts the dashboard HTTP surface and its background refresher.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *dashboardsqlite.Store
	live       *campaign.Live
	refresh    time.Duration
	closeOnce  sync.Once
}

// NewServer validates config, opens storage and builds the handler.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = campaign.DefaultRefreshInterval
	}

	var store *dashboardsqlite.Store
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		opened, err := dashboardsqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open dashboard storage: %w", err)
		}
		store = opened
	}

	live := campaign.NewLive()
	hcfg := HandlerConfig{
		Live:            live,
		PageSize:        cfg.PageSize,
		RefreshInterval: cfg.RefreshInterval,
	}
	if store != nil {
		hcfg.Store = store
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           NewHandler(hcfg),
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
		store:   store,
		live:    live,
		refresh: cfg.RefreshInterval,
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic and refreshes live metrics until
// context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	liveCtx, stopLive := context.WithCancel(ctx)
	defer stopLive()
	go s.live.Run(liveCtx, s.refresh)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", slog.String("addr", s.httpAddr))
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown dashboard http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve dashboard http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if s.httpServer != nil {
			_ = s.httpServer.Close()
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				slog.Warn("close dashboard storage", slog.Any("error", err))
			}
		}
	})
}
