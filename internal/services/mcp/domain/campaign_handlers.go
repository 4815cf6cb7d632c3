package domain

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/table/csvexport"
	"github.com/louisbranch/adpulse/internal/table/tablequery"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExportFilePrefix names exported CSV files.
const ExportFilePrefix = "campaign-data"

// CampaignListTool defines the MCP tool schema for listing campaigns.
func CampaignListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaigns_list",
		Description: "Lists one page of marketing campaigns after search, filter and ordering",
	}
}

// CampaignExportTool defines the MCP tool schema for exporting campaigns.
func CampaignExportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaigns_export",
		Description: "Exports matching or selected marketing campaigns as CSV",
	}
}

// CampaignListHandler executes a campaign list request.
func CampaignListHandler(source RecordSource, pageSize int) mcp.ToolHandlerFor[CampaignListInput, CampaignListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignListInput) (*mcp.CallToolResult, CampaignListResult, error) {
		if source == nil {
			return nil, CampaignListResult{}, fmt.Errorf("campaign source is not configured")
		}
		if input.Page < 0 || input.PageSize < 0 {
			return nil, CampaignListResult{}, fmt.Errorf("page and page_size must not be negative")
		}

		engine := campaign.NewEngine(source(), pageSize)
		err := tablequery.Apply(engine, tablequery.Request{
			Query:    strings.TrimSpace(input.Query),
			Filter:   strings.TrimSpace(input.Filter),
			OrderBy:  strings.TrimSpace(input.OrderBy),
			Page:     input.Page,
			PageSize: input.PageSize,
		})
		if err != nil {
			return nil, CampaignListResult{}, fmt.Errorf("invalid campaign query: %w", err)
		}

		state := engine.State()
		from, to, total := engine.PageRange()
		result := CampaignListResult{
			Campaigns:  []CampaignEntry{},
			Page:       state.Pagination.PageIndex + 1,
			PageSize:   state.Pagination.PageSize,
			PageCount:  engine.PageCount(),
			TotalCount: total,
			Summary:    fmt.Sprintf("Showing %d to %d of %d entries", from, to, total),
		}
		for _, r := range engine.PageRows() {
			result.Campaigns = append(result.Campaigns, campaignEntry(r))
		}
		if engine.CanNextPage() {
			result.NextPage = result.Page + 1
		}
		return nil, result, nil
	}
}

// CampaignExportHandler executes a campaign export request.
func CampaignExportHandler(source RecordSource, now func() time.Time) mcp.ToolHandlerFor[CampaignExportInput, CampaignExportResult] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignExportInput) (*mcp.CallToolResult, CampaignExportResult, error) {
		if source == nil {
			return nil, CampaignExportResult{}, fmt.Errorf("campaign source is not configured")
		}

		records := source()
		engine := campaign.NewEngine(records, len(records))
		err := tablequery.Apply(engine, tablequery.Request{
			Query:  strings.TrimSpace(input.Query),
			Filter: strings.TrimSpace(input.Filter),
		})
		if err != nil {
			return nil, CampaignExportResult{}, fmt.Errorf("invalid campaign query: %w", err)
		}

		known := make(map[string]bool, len(records))
		for _, r := range records {
			known[campaign.RowID(r)] = true
		}
		for _, id := range input.IDs {
			id = strings.TrimSpace(id)
			if !known[id] {
				return nil, CampaignExportResult{}, fmt.Errorf("unknown campaign id %q", id)
			}
			engine.ToggleRowSelected(id, true)
		}

		rows := engine.ExportRows()
		var buf bytes.Buffer
		if err := csvexport.Write(&buf, rows, engine.Columns()); err != nil {
			return nil, CampaignExportResult{}, fmt.Errorf("campaign export failed: %w", err)
		}
		return nil, CampaignExportResult{
			Filename:    csvexport.Filename(ExportFilePrefix, now()),
			ContentType: csvexport.ContentType,
			RowCount:    len(rows),
			CSV:         buf.String(),
		}, nil
	}
}
