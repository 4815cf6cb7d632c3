package dashboard

import (
	"flag"
	"io"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != ":8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8090")
	}
	if cfg.DBPath != "data/dashboard.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/dashboard.db")
	}
	if cfg.PageSize != 5 {
		t.Fatalf("PageSize = %d, want 5", cfg.PageSize)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("RefreshInterval = %v, want 30s", cfg.RefreshInterval)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("ADPULSE_DASHBOARD_ADDR", "127.0.0.1:9000")
	t.Setenv("ADPULSE_REFRESH_INTERVAL", "5s")
	t.Setenv("ADPULSE_LOG_LEVEL", "debug")

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("HTTPAddr = %q, want env value", cfg.HTTPAddr)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Fatalf("RefreshInterval = %v, want 5s", cfg.RefreshInterval)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ADPULSE_TABLE_PAGE_SIZE", "20")

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-page-size", "10", "-db-path", ""})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.DBPath != "" {
		t.Fatalf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("ADPULSE_REFRESH_INTERVAL", "soon")

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-nope"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
