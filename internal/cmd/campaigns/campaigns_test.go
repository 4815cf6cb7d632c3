package campaigns

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, time.August, 1, 12, 0, 0, 0, time.Local)
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("campaigns", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Page != 1 || cfg.PageSize != 5 {
		t.Fatalf("expected page 1 of size 5, got %d/%d", cfg.Page, cfg.PageSize)
	}
	if cfg.CSV || cfg.Out != "" {
		t.Fatalf("expected table output by default, got %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("campaigns", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-q", "Summer", "-order-by", "budget desc", "-csv", "-ids", "1, 9"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Query != "Summer" || cfg.OrderBy != "budget desc" || !cfg.CSV {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.IDs) != 2 || cfg.IDs[0] != "1" || cfg.IDs[1] != "9" {
		t.Fatalf("unexpected ids %v", cfg.IDs)
	}
}

func TestParseConfigRejectsPositionalArgs(t *testing.T) {
	fs := flag.NewFlagSet("campaigns", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"list"}); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRunListsFirstPage(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), Config{PageSize: 5, Page: 1}, &out, fixedNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Q3 Summer Sale", "Holiday Shopping", "Jul 15, 2025", "$12,500", "Showing 1 to 5 of 22 entries. Page 1 of 5"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "App Download Push") {
		t.Fatalf("expected only the first page, got:\n%s", text)
	}
}

func TestRunAppliesQueryAndOrder(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{PageSize: 5, Page: 1, Query: "summer", OrderBy: "budget desc"}
	if err := run(context.Background(), cfg, &out, fixedNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	travel := strings.Index(text, "Summer Travel Guide")
	end := strings.Index(text, "End of Summer Sale")
	q3 := strings.Index(text, "Q3 Summer Sale")
	if travel < 0 || end < 0 || q3 < 0 || !(travel < end && end < q3) {
		t.Fatalf("expected budget descending order, got:\n%s", text)
	}
	if !strings.Contains(text, "Showing 1 to 3 of 3 entries. Page 1 of 1") {
		t.Fatalf("unexpected summary:\n%s", text)
	}
}

func TestRunRejectsMalformedQuery(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), Config{PageSize: 5, Filter: `owner = "me"`}, &out, fixedNow); err == nil {
		t.Fatal("expected error for unknown filter field")
	}
	if err := run(context.Background(), Config{PageSize: 5, IDs: []string{"1"}}, &out, fixedNow); err == nil {
		t.Fatal("expected error for ids without csv")
	}
}

func TestRunExportsFilteredCSV(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{PageSize: 5, CSV: true, Filter: `status = "Paused"`}
	if err := run(context.Background(), cfg, &out, fixedNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header and 5 rows, got %d:\n%s", len(lines), out.String())
	}
	if lines[0] != "Campaign Name,Status,Start Date,End Date,Budget,Platform" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Holiday Shopping,Paused,") {
		t.Fatalf("expected source order, got %q", lines[1])
	}
}

func TestRunExportsSelectedIDsToDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{PageSize: 5, CSV: true, IDs: []string{"12", "2"}, Out: dir}
	if err := run(context.Background(), cfg, &bytes.Buffer{}, fixedNow); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "campaign-data-2025-08-01.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[1], "Brand Awareness Push,") || !strings.HasPrefix(lines[2], "Influencer Partnership,") {
		t.Fatalf("unexpected rows %q", lines[1:])
	}
}

func TestRunExportRejectsUnknownID(t *testing.T) {
	cfg := Config{PageSize: 5, CSV: true, IDs: []string{"99"}}
	if err := run(context.Background(), cfg, &bytes.Buffer{}, fixedNow); err == nil {
		t.Fatal("expected error for unknown id")
	}
}
