package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
)

// MetricCard is one KPI tile.
type MetricCard struct {
	ID       string
	Title    string
	Value    string
	Change   string
	Positive bool
	Color    string
}

// MetricsView is the polled metrics strip.
type MetricsView struct {
	Cards []MetricCard
	// Updated is the formatted time of the last refresh.
	Updated string
	// PollSeconds is the HTMX polling period.
	PollSeconds int
}

// BarRow is one labelled bar of a chart rendered as proportional widths.
type BarRow struct {
	Label   string
	Value   string
	Percent int
	Color   string
}

// InsightCard is one AI insight.
type InsightCard struct {
	Kind string
	Text string
}

// PerformanceCard summarizes one campaign's spend.
type PerformanceCard struct {
	Name     string
	Platform string
	Status   string
	Badge    string
	Budget   string
	Spent    string
	Percent  int
	Trend    string
	Result   string
}

// DashboardView provides data for the dashboard page.
type DashboardView struct {
	Metrics     MetricsView
	Revenue     []BarRow
	Sources     []BarRow
	Conversions []BarRow
	Insights    []InsightCard
	Performance []PerformanceCard
}

// DashboardPage renders the dashboard content.
func DashboardPage(view DashboardView) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<section class="page dashboard"><h1>Dashboard</h1>`)
		hw.component(ctx, MetricsPanel(view.Metrics))
		hw.raw(`<div class="grid two">`)
		hw.component(ctx, barChart("Revenue Overview", "revenue", view.Revenue))
		hw.component(ctx, barChart("Traffic Sources", "sources", view.Sources))
		hw.raw(`</div><div class="grid two">`)
		hw.component(ctx, barChart("Conversions", "conversions", view.Conversions))
		hw.raw(`<div class="card insights"><h2>AI Insights</h2><ul>`)
		for _, insight := range view.Insights {
			hw.raw(`<li><span class="badge">`)
			hw.text(insight.Kind)
			hw.raw(`</span> `)
			hw.text(insight.Text)
			hw.raw(`</li>`)
		}
		hw.raw(`</ul></div></div><div class="card performance"><h2>Campaign Performance</h2><div class="grid three">`)
		for _, card := range view.Performance {
			hw.raw(`<div class="perf-card"><div class="perf-head"><strong>`)
			hw.text(card.Name)
			hw.raw(`</strong><span`)
			hw.attr("class", "badge badge-"+card.Badge)
			hw.raw(`>`)
			hw.text(card.Status)
			hw.raw(`</span></div><div class="muted">`)
			hw.text(card.Platform)
			hw.raw(`</div><div class="progress"><div class="progress-bar"`)
			hw.attr("style", "width: "+itoa(card.Percent)+"%")
			hw.raw(`></div></div><div class="perf-foot">`)
			hw.text(card.Spent + " of " + card.Budget)
			hw.raw(` <span class="trend">`)
			hw.text(card.Trend + " " + card.Result)
			hw.raw(`</span></div></div>`)
		}
		hw.raw(`</div></div></section>`)
	})
}

// MetricsPanel renders the KPI strip that polls for refreshed values.
func MetricsPanel(view MetricsView) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<div id="metrics" class="grid four"`)
		hw.attr("hx-get", routepath.DashboardMetrics)
		if view.PollSeconds > 0 {
			hw.attr("hx-trigger", "every "+itoa(view.PollSeconds)+"s")
		}
		hw.attr("hx-swap", "outerHTML")
		hw.raw(`>`)
		for _, card := range view.Cards {
			hw.raw(`<div class="card metric"`)
			hw.attr("data-metric", card.ID)
			hw.raw(`><div class="metric-title">`)
			hw.text(card.Title)
			hw.raw(`</div><div class="metric-value"`)
			hw.attr("style", "color: "+card.Color)
			hw.raw(`>`)
			hw.text(card.Value)
			hw.raw(`</div><div`)
			if card.Positive {
				hw.attr("class", "metric-change up")
			} else {
				hw.attr("class", "metric-change down")
			}
			hw.raw(`>`)
			hw.text(card.Change)
			hw.raw(`</div></div>`)
		}
		hw.raw(`<div class="metrics-updated muted">Last updated `)
		hw.text(view.Updated)
		hw.raw(`</div></div>`)
	})
}

func barChart(title, id string, rows []BarRow) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<div class="card chart"`)
		hw.attr("id", "chart-"+id)
		hw.raw(`><h2>`)
		hw.text(title)
		hw.raw(`</h2><dl class="bars">`)
		for _, row := range rows {
			hw.raw(`<dt>`)
			hw.text(row.Label)
			hw.raw(`</dt><dd><span class="bar"`)
			style := "width: " + itoa(row.Percent) + "%"
			if row.Color != "" {
				style += "; background: " + row.Color
			}
			hw.attr("style", style)
			hw.raw(`></span><span class="bar-value">`)
			hw.text(row.Value)
			hw.raw(`</span></dd>`)
		}
		hw.raw(`</dl></div>`)
	})
}

// AudiencesView provides data for the audiences page.
type AudiencesView struct {
	Demographics []BarRow
	Geography    []BarRow
	Devices      []BarRow
	Total        string
}

// AudiencesPage renders the audience breakdown charts.
func AudiencesPage(view AudiencesView) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<section class="page audiences"><h1>Audiences</h1><p class="muted">`)
		hw.text(view.Total)
		hw.raw(` visitors in the last 30 days</p><div class="grid three">`)
		hw.component(ctx, barChart("Age Groups", "demographics", view.Demographics))
		hw.component(ctx, barChart("Top Locations", "geography", view.Geography))
		hw.component(ctx, barChart("Devices", "devices", view.Devices))
		hw.raw(`</div></section>`)
	})
}
