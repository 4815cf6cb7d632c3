// Package routepath names the dashboard's URL paths.
package routepath

import "net/url"

const (
	Root         = "/"
	StaticPrefix = "/static/"
	Healthz      = "/healthz"
)

const (
	DashboardMetrics = "/dashboard/metrics"
)

const (
	Campaigns       = "/campaigns"
	CampaignsTable  = "/campaigns/table"
	CampaignsExport = "/campaigns/export"
)

// Table mutation endpoints, all POST.
const (
	TableSearch     = CampaignsTable + "/search"
	TableFilter     = CampaignsTable + "/filter"
	TableSort       = CampaignsTable + "/sort"
	TablePage       = CampaignsTable + "/page"
	TablePageSize   = CampaignsTable + "/page-size"
	TableSelect     = CampaignsTable + "/select"
	TableSelectPage = CampaignsTable + "/select-page"
	TableColumns    = CampaignsTable + "/columns"
	TableMenu       = CampaignsTable + "/menu"
)

const (
	Audiences = "/audiences"
)

const (
	Settings      = "/settings"
	SettingsTheme = "/settings/theme"
	ThemeToggle   = "/theme/toggle"
)

const (
	Command = "/command"
)

// WithQuery appends encoded values to path, omitting an empty query.
func WithQuery(path string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
