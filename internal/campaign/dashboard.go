package campaign

// Metric is a headline KPI card.
type Metric struct {
	ID       string
	Title    string
	Value    string
	Change   string
	Positive bool
	Color    string
}

// RevenuePoint is one month of the revenue chart.
type RevenuePoint struct {
	Month        string
	Revenue      Money
	PreviousYear Money
}

// Slice is one segment of a breakdown chart.
type Slice struct {
	Name  string
	Value int
	Color string
}

// InsightKind classifies an AI insight card.
type InsightKind string

const (
	InsightRecommendation InsightKind = "Recommendation"
	InsightWarning        InsightKind = "Warning"
	InsightOpportunity    InsightKind = "Opportunity"
)

// Insight is a generated recommendation shown on the dashboard.
type Insight struct {
	ID   string
	Text string
	Kind InsightKind
}

// Performance is a campaign performance card.
type Performance struct {
	ID               string
	Name             string
	Platform         string
	Status           string
	Budget           Money
	Spent            Money
	Trend            string
	PerformanceValue string
	Color            string
}

// MetricTotalRevenue is the id of the metric the live feed updates.
const MetricTotalRevenue = "total-revenue"

const initialRevenue Money = 24567

// Metrics returns the initial KPI cards.
func Metrics() []Metric {
	return []Metric{
		{ID: MetricTotalRevenue, Title: "Total Revenue", Value: initialRevenue.String(), Change: "+15.2%", Positive: true, Color: "#3b82f6"},
		{ID: "active-users", Title: "Active Users", Value: FormatNumber(12938), Change: "+8.4%", Positive: true, Color: "#8b5cf6"},
		{ID: "conversions", Title: "Conversions", Value: FormatNumber(1845), Change: "-3.2%", Positive: false, Color: "#10b981"},
		{ID: "avg-engagement", Title: "Avg. Engagement Rate", Value: "4.6%", Change: "+12.5%", Positive: true, Color: "#f59e0b"},
	}
}

// RevenueByMonth returns the trailing twelve months of revenue.
func RevenueByMonth() []RevenuePoint {
	return []RevenuePoint{
		{"Aug", 15200, 12500},
		{"Sep", 16800, 13400},
		{"Oct", 19500, 16200},
		{"Nov", 22300, 18100},
		{"Dec", 28400, 22500},
		{"Jan", 24100, 19800},
		{"Feb", 22800, 19200},
		{"Mar", 25600, 20300},
		{"Apr", 27500, 21200},
		{"May", 26300, 22100},
		{"Jun", 28200, 23400},
		{"Jul", 29800, 24500},
	}
}

// TrafficSources returns visitors by acquisition source.
func TrafficSources() []Slice {
	return []Slice{
		{"Google", 24500, "#3b82f6"},
		{"Facebook", 18300, "#1877F2"},
		{"Instagram", 15800, "#E1306C"},
		{"Twitter", 9600, "#1DA1F2"},
		{"TikTok", 12200, "#000000"},
		{"Organic", 8400, "#10b981"},
		{"Referral", 5200, "#f59e0b"},
	}
}

// Conversions returns conversions by type.
func Conversions() []Slice {
	return []Slice{
		{"Direct Purchase", 12500, "#3b82f6"},
		{"Email Signup", 8700, "#8b5cf6"},
		{"Free Trial", 6200, "#10b981"},
		{"Demo Request", 4300, "#f59e0b"},
		{"Other", 2800, "#9ca3af"},
		{"Registered", 3680, "#8b5cf6"},
	}
}

// Demographics returns audience size by age band.
func Demographics() []Slice {
	return []Slice{
		{"18-24", 18500, "#3b82f6"},
		{"25-34", 32700, "#8b5cf6"},
		{"35-44", 24600, "#10b981"},
		{"45-54", 15300, "#f59e0b"},
		{"55+", 9800, "#9ca3af"},
	}
}

// Geography returns audience size by region.
func Geography() []Slice {
	return []Slice{
		{"North America", 42500, "#3b82f6"},
		{"Europe", 28700, "#8b5cf6"},
		{"Asia", 19600, "#10b981"},
		{"Oceania", 6300, "#f59e0b"},
		{"Other", 3900, "#9ca3af"},
	}
}

// Devices returns audience size by device class.
func Devices() []Slice {
	return []Slice{
		{"Mobile", 54500, "#3b82f6"},
		{"Desktop", 38700, "#8b5cf6"},
		{"Tablet", 8600, "#10b981"},
		{"Other", 1200, "#9ca3af"},
	}
}

// Insights returns the AI insight cards.
func Insights() []Insight {
	return []Insight{
		{"1", "High engagement on 'Summer Sale' campaign suggests launching a similar 'Autumn Deals' campaign next month.", InsightRecommendation},
		{"2", "The 'Brand Awareness' campaign has a 32% higher CPC than industry average. Consider reviewing ad creatives.", InsightWarning},
		{"3", "Mobile users convert at 2.5x the rate of desktop users on your 'Product Launch' campaign. Allocate more budget to mobile ads.", InsightOpportunity},
		{"4", "Email campaigns are showing 40% higher ROI than social media. Consider expanding your email marketing strategy.", InsightRecommendation},
		{"5", "The 18-24 age demographic is showing unusually high engagement on Instagram. Consider creating targeted content.", InsightOpportunity},
		{"6", "Your Facebook conversion rate dropped 15% this week. Check for recent platform algorithm changes.", InsightWarning},
	}
}

// PerformanceCards returns the campaign performance summary cards.
func PerformanceCards() []Performance {
	return []Performance{
		{ID: "1", Name: "Summer Sale Promotion", Platform: "Facebook", Status: "active", Budget: 1200, Spent: 843, Trend: "up", PerformanceValue: "+12.5%", Color: "#3b82f6"},
		{ID: "2", Name: "Brand Awareness", Platform: "Instagram", Status: "active", Budget: 2500, Spent: 1245, Trend: "up", PerformanceValue: "+8.3%", Color: "#8b5cf6"},
		{ID: "3", Name: "Product Launch", Platform: "TikTok", Status: "scheduled", Budget: 3000, Spent: 0, Trend: "pending", PerformanceValue: "Starts Aug 15", Color: "#14b8a6"},
		{ID: "4", Name: "Holiday Special", Platform: "Google Ads", Status: "paused", Budget: 4500, Spent: 1823, Trend: "down", PerformanceValue: "-3.7%", Color: "#f59e0b"},
	}
}

// SliceTotal sums the values of a breakdown.
func SliceTotal(slices []Slice) int {
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	return total
}
