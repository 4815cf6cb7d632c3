package domain

import (
	"github.com/louisbranch/adpulse/internal/campaign"
)

// CampaignListInput represents the MCP tool input for listing campaigns.
type CampaignListInput struct {
	Query    string `json:"query,omitempty" jsonschema:"case-insensitive search across every column"`
	Filter   string `json:"filter,omitempty" jsonschema:"AIP-160 filter, e.g. status = \"Active\" AND platform = \"Instagram\""`
	OrderBy  string `json:"order_by,omitempty" jsonschema:"AIP-132 ordering, e.g. budget desc, name"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number (defaults to 1)"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"rows per page (defaults to the server page size, max 100)"`
}

// CampaignExportInput represents the MCP tool input for exporting campaigns.
type CampaignExportInput struct {
	Query  string   `json:"query,omitempty" jsonschema:"case-insensitive search across every column"`
	Filter string   `json:"filter,omitempty" jsonschema:"AIP-160 filter over column keys"`
	IDs    []string `json:"ids,omitempty" jsonschema:"campaign identifiers to export; empty exports every matching campaign"`
}

// CampaignEntry is one campaign row.
type CampaignEntry struct {
	ID          string `json:"id" jsonschema:"campaign identifier"`
	Name        string `json:"name" jsonschema:"campaign name"`
	Status      string `json:"status" jsonschema:"Active, Paused or Completed"`
	StartDate   string `json:"start_date" jsonschema:"start date (YYYY-MM-DD)"`
	EndDate     string `json:"end_date" jsonschema:"end date (YYYY-MM-DD)"`
	Budget      int64  `json:"budget" jsonschema:"budget in whole dollars"`
	BudgetLabel string `json:"budget_label" jsonschema:"formatted budget"`
	Platform    string `json:"platform" jsonschema:"advertising platform"`
	Target      string `json:"target,omitempty" jsonschema:"target audience"`
	Description string `json:"description,omitempty" jsonschema:"campaign description"`
}

// CampaignListResult represents the MCP tool output for listing campaigns.
type CampaignListResult struct {
	Campaigns  []CampaignEntry `json:"campaigns" jsonschema:"campaigns on the requested page"`
	Page       int             `json:"page" jsonschema:"1-based page returned"`
	PageSize   int             `json:"page_size" jsonschema:"rows per page"`
	PageCount  int             `json:"page_count" jsonschema:"number of pages"`
	TotalCount int             `json:"total_count" jsonschema:"campaigns matching the query and filter"`
	Summary    string          `json:"summary" jsonschema:"human readable range summary"`
	NextPage   int             `json:"next_page,omitempty" jsonschema:"next page number when more rows exist"`
}

// CampaignExportResult represents the MCP tool output for exporting campaigns.
type CampaignExportResult struct {
	Filename    string `json:"filename" jsonschema:"suggested file name"`
	ContentType string `json:"content_type" jsonschema:"MIME type of the CSV"`
	RowCount    int    `json:"row_count" jsonschema:"exported data rows"`
	CSV         string `json:"csv" jsonschema:"CSV document with a header row"`
}

// CampaignListPayload represents the MCP resource payload for campaign listings.
type CampaignListPayload struct {
	Campaigns []CampaignEntry `json:"campaigns"`
}

// CampaignPayload represents the MCP resource payload for a single campaign.
type CampaignPayload struct {
	Campaign CampaignEntry `json:"campaign"`
}

// RecordSource supplies the campaign rows tools operate on.
type RecordSource func() []campaign.Record

const isoDate = "2006-01-02"

func campaignEntry(r campaign.Record) CampaignEntry {
	return CampaignEntry{
		ID:          r.ID,
		Name:        r.Name,
		Status:      string(r.Status),
		StartDate:   r.StartDate.Format(isoDate),
		EndDate:     r.EndDate.Format(isoDate),
		Budget:      int64(r.Budget),
		BudgetLabel: r.Budget.String(),
		Platform:    r.Platform,
		Target:      r.Target,
		Description: r.Description,
	}
}
