package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	campaignListURI      = "campaigns://list"
	campaignURIPrefix    = "campaign://"
	campaignURITemplate  = campaignURIPrefix + "{campaign_id}"
	resourceMIMETypeJSON = "application/json"
)

// CampaignListResource defines the MCP resource for campaign listings.
func CampaignListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "campaign_list",
		Title:       "Campaigns",
		Description: "Readable listing of every marketing campaign in source order",
		MIMEType:    resourceMIMETypeJSON,
		URI:         campaignListURI,
	}
}

// CampaignResourceTemplate defines the MCP resource template for one campaign.
func CampaignResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "campaign",
		Title:       "Campaign",
		Description: "Readable campaign record. URI format: campaign://{campaign_id}",
		MIMEType:    resourceMIMETypeJSON,
		URITemplate: campaignURITemplate,
	}
}

// CampaignListResourceHandler returns a readable campaign listing resource.
func CampaignListResourceHandler(source RecordSource) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if source == nil {
			return nil, fmt.Errorf("campaign source is not configured")
		}
		uri := campaignListURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != campaignListURI {
			return nil, fmt.Errorf("unexpected campaign list URI %q", uri)
		}

		payload := CampaignListPayload{Campaigns: []CampaignEntry{}}
		for _, r := range source() {
			payload.Campaigns = append(payload.Campaigns, campaignEntry(r))
		}
		return jsonResource(uri, payload)
	}
}

// CampaignResourceHandler returns a readable single campaign resource.
func CampaignResourceHandler(source RecordSource) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if source == nil {
			return nil, fmt.Errorf("campaign source is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("campaign ID is required; use URI format campaign://{campaign_id}")
		}
		uri := req.Params.URI
		campaignID, err := parseCampaignIDFromURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse campaign ID from URI: %w", err)
		}
		for _, r := range source() {
			if campaign.RowID(r) == campaignID {
				return jsonResource(uri, CampaignPayload{Campaign: campaignEntry(r)})
			}
		}
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func parseCampaignIDFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, campaignURIPrefix)
	if !ok {
		return "", fmt.Errorf("URI must start with %q", campaignURIPrefix)
	}
	campaignID := strings.TrimSpace(rest)
	if campaignID == "" || strings.Contains(campaignID, "/") {
		return "", fmt.Errorf("URI must be campaign://{campaign_id}")
	}
	return campaignID, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: resourceMIMETypeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
