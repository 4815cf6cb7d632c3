package mcp

import (
	"flag"
	"reflect"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.PageSize != 5 {
		t.Fatalf("expected default page size 5, got %d", cfg.PageSize)
	}
	if len(cfg.AllowedHosts) != 0 {
		t.Fatalf("expected no allowed hosts, got %v", cfg.AllowedHosts)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ADPULSE_MCP_HTTP_ADDR", "env-http")
	t.Setenv("ADPULSE_MCP_ALLOWED_HOSTS", "a.example.com,b.example.com")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-transport", "http", "-page-size", "25"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "env-http" {
		t.Fatalf("expected env http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.PageSize != 25 {
		t.Fatalf("expected page size 25, got %d", cfg.PageSize)
	}
	want := []string{"a.example.com", "b.example.com"}
	if !reflect.DeepEqual(cfg.AllowedHosts, want) {
		t.Fatalf("expected allowed hosts %v, got %v", want, cfg.AllowedHosts)
	}
}

func TestParseConfigAllowedHostsFlag(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-allowed-hosts", " mcp.internal , ,tools.internal"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	want := []string{"mcp.internal", "tools.internal"}
	if !reflect.DeepEqual(cfg.AllowedHosts, want) {
		t.Fatalf("expected allowed hosts %v, got %v", want, cfg.AllowedHosts)
	}
}
