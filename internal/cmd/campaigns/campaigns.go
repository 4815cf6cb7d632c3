// Package campaigns lists or exports the campaigns table from a terminal.
package campaigns

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/louisbranch/adpulse/internal/campaign"
	platformcmd "github.com/louisbranch/adpulse/internal/platform/cmd"
	"github.com/louisbranch/adpulse/internal/table"
	"github.com/louisbranch/adpulse/internal/table/csvexport"
	"github.com/louisbranch/adpulse/internal/table/tablequery"
)

// ExportFilePrefix names exported files.
const ExportFilePrefix = "campaign-data"

// Config holds the campaigns command configuration.
type Config struct {
	PageSize int `env:"TABLE_PAGE_SIZE" envDefault:"5"`
	Query    string
	Filter   string
	OrderBy  string
	Page     int
	// IDs restricts a CSV export to the listed campaigns.
	IDs []string
	// CSV writes every matching row as CSV instead of a page table.
	CSV bool
	// Out is the CSV destination. Empty means stdout; a directory gets a
	// dated file name.
	Out string
	platformcmd.Observability
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Query, "q", "", "case-insensitive search across every column")
	fs.StringVar(&cfg.Filter, "filter", "", `AIP-160 filter, e.g. status = "Active"`)
	fs.StringVar(&cfg.OrderBy, "order-by", "", `AIP-132 ordering, e.g. "budget desc, name"`)
	fs.IntVar(&cfg.Page, "page", 1, "1-based page to list")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "rows per page")
	fs.BoolVar(&cfg.CSV, "csv", false, "export matching rows as CSV")
	fs.StringVar(&cfg.Out, "out", "", "CSV output file or directory (default stdout)")
	fs.Func("ids", "comma-separated campaign ids to export", func(value string) error {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.IDs = append(cfg.IDs, trimmed)
			}
		}
		return nil
	})
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, nil
}

// Run lists one page of campaigns, or exports them as CSV, to stdout.
func Run(ctx context.Context, cfg Config, stdout io.Writer) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceCampaigns, cfg.Observability, func(ctx context.Context) error {
		return run(ctx, cfg, stdout, time.Now)
	})
}

func run(ctx context.Context, cfg Config, stdout io.Writer, now func() time.Time) error {
	records := campaign.Records()
	pageSize := cfg.PageSize
	if cfg.CSV {
		pageSize = len(records)
	}
	engine := campaign.NewEngine(records, pageSize)
	req := tablequery.Request{
		Query:    cfg.Query,
		Filter:   cfg.Filter,
		OrderBy:  cfg.OrderBy,
		Page:     cfg.Page,
		PageSize: pageSize,
	}
	if err := tablequery.Apply(engine, req); err != nil {
		return fmt.Errorf("invalid campaign query: %w", err)
	}

	if cfg.CSV {
		return exportCSV(ctx, engine, cfg, stdout, now)
	}
	if len(cfg.IDs) > 0 {
		return errors.New("-ids requires -csv")
	}
	return listPage(engine, stdout)
}

func listPage(engine *table.Engine[campaign.Record], w io.Writer) error {
	var columns []table.Column[campaign.Record]
	for _, col := range engine.VisibleColumns() {
		if !col.Synthetic() {
			columns = append(columns, col)
		}
	}

	header := make([]any, 0, len(columns)+1)
	header = append(header, "ID")
	for _, col := range columns {
		header = append(header, col.Header)
	}

	tw := tablewriter.NewWriter(w)
	tw.Header(header...)
	for i, row := range engine.PageRows() {
		cells := make([]string, 0, len(columns)+1)
		cells = append(cells, row.ID)
		for _, col := range columns {
			cells = append(cells, col.Render(row, i))
		}
		if err := tw.Append(cells); err != nil {
			return fmt.Errorf("append row %s: %w", row.ID, err)
		}
	}
	if err := tw.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	from, to, total := engine.PageRange()
	page := engine.State().Pagination.PageIndex + 1
	_, err := fmt.Fprintf(w, "Showing %d to %d of %d entries. Page %d of %d\n", from, to, total, page, engine.PageCount())
	return err
}

func exportCSV(ctx context.Context, engine *table.Engine[campaign.Record], cfg Config, stdout io.Writer, now func() time.Time) error {
	for _, id := range cfg.IDs {
		if !hasRow(engine, id) {
			return fmt.Errorf("campaign %q does not match the query", id)
		}
		engine.ToggleRowSelected(id, true)
	}
	rows := engine.ExportRows()

	out := strings.TrimSpace(cfg.Out)
	if out == "" {
		return csvexport.Write(stdout, rows, engine.Columns())
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, csvexport.Filename(ExportFilePrefix, now()))
	}
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := csvexport.Write(file, rows, engine.Columns()); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	slog.InfoContext(ctx, "campaigns exported", slog.String("path", out), slog.Int("rows", len(rows)))
	return nil
}

func hasRow(engine *table.Engine[campaign.Record], id string) bool {
	for _, row := range engine.FilteredRows() {
		if row.ID == id {
			return true
		}
	}
	return false
}
