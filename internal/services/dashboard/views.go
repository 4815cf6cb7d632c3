package dashboard

import (
	"slices"
	"strconv"
	"time"

	"github.com/louisbranch/adpulse/internal/campaign"
	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
	"github.com/louisbranch/adpulse/internal/services/dashboard/templates"
	"github.com/louisbranch/adpulse/internal/table"
	"github.com/louisbranch/adpulse/internal/table/tablequery"
)

// updatedLayout formats the metrics refresh time.
const updatedLayout = "15:04:05"

// campaignTableView projects a session's engine and View menu for
// rendering. notice is shown above the table when non-empty.
func campaignTableView(session *tableSession, notice string) templates.CampaignTableView {
	e := session.engine
	state := e.State()
	columns := e.VisibleColumns()

	headers := make([]templates.HeaderCell, 0, len(columns))
	for _, col := range columns {
		hc := e.HeaderContext(col.Key)
		if col.Synthetic() {
			headers = append(headers, templates.HeaderCell{
				Key:          col.Key,
				Select:       true,
				AllSelected:  hc.AllPageRowsSelected,
				SomeSelected: hc.SomePageRowsSelected,
			})
			continue
		}
		headers = append(headers, templates.HeaderCell{
			Key:       col.Key,
			Label:     col.Label(hc),
			Sortable:  col.Sortable(),
			Direction: string(hc.SortDirection),
			SortIndex: hc.SortIndex + 1,
		})
	}

	pageRows := e.PageRows()
	ids := e.PageRowIDs()
	rows := make([]templates.RowView, 0, len(pageRows))
	for i, record := range pageRows {
		row := templates.RowView{ID: ids[i], Selected: e.IsRowSelected(ids[i])}
		for _, col := range columns {
			if col.Synthetic() {
				continue
			}
			cell := templates.CellView{Key: col.Key, Text: col.Render(record, i)}
			if col.Key == campaign.ColumnStatus {
				cell.Badge = record.Status.BadgeVariant()
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}

	session.viewMenu.sync()
	view := templates.CampaignTableView{
		Headers:       headers,
		Rows:          rows,
		Query:         state.GlobalFilter,
		Filters:       columnFilters(state.ColumnFilters),
		PageIndex:     state.Pagination.PageIndex,
		PageCount:     e.PageCount(),
		PageSize:      state.Pagination.PageSize,
		PageSizes:     pageSizeChoices(state.Pagination.PageSize),
		CanPrev:       e.CanPreviousPage(),
		CanNext:       e.CanNextPage(),
		Summary:       pageSummary(e),
		SelectedCount: e.SelectedCount(),
		Notice:        notice,
		PushURL:       shareURL(state),
	}
	if e.CanHideColumns() {
		view.ViewMenu = session.viewMenu.view()
	}
	if e.CanExport() {
		view.ExportHref = routepath.CampaignsExport
	}
	return view
}

// shareURL is the campaigns page URL reproducing state.
func shareURL(state table.State) string {
	return routepath.WithQuery(routepath.Campaigns, tablequery.FromState(state).Values())
}

func pageSummary(e *table.Engine[campaign.Record]) string {
	from, to, total := e.PageRange()
	return "Showing " + strconv.Itoa(from) + " to " + strconv.Itoa(to) + " of " + strconv.Itoa(total) + " entries"
}

// pageSizeChoices lists the offered sizes plus current when it is custom.
func pageSizeChoices(current int) []int {
	if slices.Contains(pageSizes, current) {
		return pageSizes
	}
	out := append(slices.Clone(pageSizes), current)
	slices.Sort(out)
	return out
}

// filterableColumns are the columns with a select in the toolbar.
var filterableColumns = []struct {
	key   string
	label string
}{
	{campaign.ColumnStatus, "Statuses"},
	{campaign.ColumnPlatform, "Platforms"},
}

func columnFilters(active map[string]string) []templates.ColumnFilterView {
	records := campaign.Records()
	out := make([]templates.ColumnFilterView, 0, len(filterableColumns))
	for _, fc := range filterableColumns {
		var values []string
		for _, r := range records {
			var v string
			switch fc.key {
			case campaign.ColumnStatus:
				v = string(r.Status)
			case campaign.ColumnPlatform:
				v = r.Platform
			}
			if !slices.Contains(values, v) {
				values = append(values, v)
			}
		}
		slices.Sort(values)
		view := templates.ColumnFilterView{Key: fc.key, Label: fc.label}
		for _, v := range values {
			view.Options = append(view.Options, templates.FilterOption{Value: v, Label: v, Selected: active[fc.key] == v})
		}
		out = append(out, view)
	}
	return out
}

// metricsView renders the live metric cards.
func metricsView(live *campaign.Live, poll time.Duration) templates.MetricsView {
	metrics, updated := live.Snapshot()
	cards := make([]templates.MetricCard, 0, len(metrics))
	for _, m := range metrics {
		cards = append(cards, templates.MetricCard{
			ID:       m.ID,
			Title:    m.Title,
			Value:    m.Value,
			Change:   m.Change,
			Positive: m.Positive,
			Color:    m.Color,
		})
	}
	return templates.MetricsView{
		Cards:       cards,
		Updated:     updated.Format(updatedLayout),
		PollSeconds: int(poll / time.Second),
	}
}

// sliceBars scales a breakdown so the largest slice fills the bar.
func sliceBars(parts []campaign.Slice) []templates.BarRow {
	peak := 0
	for _, s := range parts {
		peak = max(peak, s.Value)
	}
	out := make([]templates.BarRow, 0, len(parts))
	for _, s := range parts {
		out = append(out, templates.BarRow{
			Label:   s.Name,
			Value:   campaign.FormatNumber(s.Value),
			Percent: percent(s.Value, peak),
			Color:   s.Color,
		})
	}
	return out
}

func revenueBars(points []campaign.RevenuePoint) []templates.BarRow {
	var peak campaign.Money
	for _, p := range points {
		peak = max(peak, p.Revenue)
	}
	out := make([]templates.BarRow, 0, len(points))
	for _, p := range points {
		out = append(out, templates.BarRow{
			Label:   p.Month,
			Value:   p.Revenue.String(),
			Percent: percent(int(p.Revenue), int(peak)),
		})
	}
	return out
}

func percent(value, whole int) int {
	if whole <= 0 {
		return 0
	}
	return min(value*100/whole, 100)
}

func dashboardView(live *campaign.Live, poll time.Duration) templates.DashboardView {
	view := templates.DashboardView{
		Metrics:     metricsView(live, poll),
		Revenue:     revenueBars(campaign.RevenueByMonth()),
		Sources:     sliceBars(campaign.TrafficSources()),
		Conversions: sliceBars(campaign.Conversions()),
	}
	for _, insight := range campaign.Insights() {
		view.Insights = append(view.Insights, templates.InsightCard{Kind: string(insight.Kind), Text: insight.Text})
	}
	for _, p := range campaign.PerformanceCards() {
		view.Performance = append(view.Performance, templates.PerformanceCard{
			Name:     p.Name,
			Platform: p.Platform,
			Status:   p.Status,
			Badge:    performanceBadge(p.Status),
			Budget:   p.Budget.String(),
			Spent:    p.Spent.String(),
			Percent:  percent(int(p.Spent), int(p.Budget)),
			Trend:    p.Trend,
			Result:   p.PerformanceValue,
		})
	}
	return view
}

func performanceBadge(status string) string {
	if s, ok := campaign.ParseStatus(status); ok {
		return s.BadgeVariant()
	}
	return "outline"
}

func audiencesView() templates.AudiencesView {
	demographics := campaign.Demographics()
	return templates.AudiencesView{
		Demographics: sliceBars(demographics),
		Geography:    sliceBars(campaign.Geography()),
		Devices:      sliceBars(campaign.Devices()),
		Total:        campaign.FormatNumber(campaign.SliceTotal(demographics)),
	}
}
