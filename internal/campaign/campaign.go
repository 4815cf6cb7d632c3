package campaign

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status is the lifecycle state of a campaign.
type Status string

const (
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCompleted Status = "Completed"
)

// BadgeVariant maps a status to its badge style.
func (s Status) BadgeVariant() string {
	switch s {
	case StatusActive:
		return "success"
	case StatusPaused:
		return "warning"
	case StatusCompleted:
		return "info"
	default:
		return "default"
	}
}

// ParseStatus resolves a case-insensitive status name.
func ParseStatus(value string) (Status, bool) {
	for _, s := range []Status{StatusActive, StatusPaused, StatusCompleted} {
		if strings.EqualFold(strings.TrimSpace(value), string(s)) {
			return s, true
		}
	}
	return "", false
}

var printer = message.NewPrinter(language.English)

// Money is a whole-dollar amount. It sorts numerically and prints as
// "$12,500".
type Money int64

func (m Money) String() string {
	if m < 0 {
		return printer.Sprintf("-$%d", -int64(m))
	}
	return printer.Sprintf("$%d", int64(m))
}

// ParseMoney reads amounts such as "$12,500" or "12500".
func ParseMoney(value string) (Money, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	if cleaned == "" {
		return 0, fmt.Errorf("parse money %q: empty amount", value)
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", value, err)
	}
	return Money(n), nil
}

// FormatNumber prints n with thousands separators.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// Record is one row of the campaigns table.
type Record struct {
	ID          string
	Name        string
	Status      Status
	StartDate   time.Time
	EndDate     time.Time
	Budget      Money
	Platform    string
	Target      string
	Description string
}

// Records returns a fresh copy of the campaign dataset.
func Records() []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var records = []Record{
	{ID: "1", Name: "Q3 Summer Sale", Status: StatusActive, StartDate: day(2025, time.July, 15), EndDate: day(2025, time.August, 15), Budget: 12500, Platform: "Facebook", Target: "New Customers", Description: "Summer promotion targeting beach and vacation products"},
	{ID: "2", Name: "Brand Awareness Push", Status: StatusActive, StartDate: day(2025, time.June, 1), EndDate: day(2025, time.September, 30), Budget: 24000, Platform: "Instagram", Target: "18-34 Age Group", Description: "Increasing brand visibility among younger audiences"},
	{ID: "3", Name: "Back to School", Status: StatusActive, StartDate: day(2025, time.July, 20), EndDate: day(2025, time.September, 10), Budget: 18750, Platform: "Google", Target: "Parents", Description: "Promotional campaign for school supplies and children's products"},
	{ID: "4", Name: "Spring Collection", Status: StatusCompleted, StartDate: day(2025, time.March, 1), EndDate: day(2025, time.May, 31), Budget: 32000, Platform: "Multiple", Target: "Existing Customers", Description: "Showcasing the new spring fashion line across all platforms"},
	{ID: "5", Name: "Holiday Shopping", Status: StatusPaused, StartDate: day(2025, time.November, 1), EndDate: day(2025, time.December, 25), Budget: 45000, Platform: "Multiple", Target: "All Segments", Description: "Major holiday season promotional campaign"},
	{ID: "6", Name: "App Download Push", Status: StatusActive, StartDate: day(2025, time.July, 1), EndDate: day(2025, time.October, 31), Budget: 15000, Platform: "Google", Target: "Mobile Users", Description: "Campaign to increase app downloads and engagement"},
	{ID: "7", Name: "New Product Launch", Status: StatusPaused, StartDate: day(2025, time.August, 15), EndDate: day(2025, time.September, 30), Budget: 28500, Platform: "Multiple", Target: "Early Adopters", Description: "Launch campaign for our newest flagship product"},
	{ID: "8", Name: "Valentine's Day Special", Status: StatusCompleted, StartDate: day(2025, time.February, 1), EndDate: day(2025, time.February, 14), Budget: 9500, Platform: "Instagram", Target: "Couples", Description: "Romantic themed campaign for Valentine's Day merchandise"},
	{ID: "9", Name: "Summer Travel Guide", Status: StatusActive, StartDate: day(2025, time.May, 15), EndDate: day(2025, time.August, 15), Budget: 22000, Platform: "Facebook", Target: "Travel Enthusiasts", Description: "Content marketing campaign featuring summer travel destinations"},
	{ID: "10", Name: "Customer Loyalty Program", Status: StatusActive, StartDate: day(2025, time.January, 1), EndDate: day(2025, time.December, 31), Budget: 36000, Platform: "Email", Target: "Existing Customers", Description: "Year-long campaign to boost customer retention and loyalty"},
	{ID: "11", Name: "Flash Sale Weekend", Status: StatusCompleted, StartDate: day(2025, time.June, 10), EndDate: day(2025, time.June, 12), Budget: 7500, Platform: "All Digital", Target: "All Segments", Description: "Weekend-only flash sale with deep discounts"},
	{ID: "12", Name: "Influencer Partnership", Status: StatusActive, StartDate: day(2025, time.July, 1), EndDate: day(2025, time.September, 30), Budget: 42000, Platform: "Instagram", Target: "Fashion Enthusiasts", Description: "Collaboration with top fashion influencers"},
	{ID: "13", Name: "Sports Event Sponsorship", Status: StatusActive, StartDate: day(2025, time.June, 15), EndDate: day(2025, time.August, 15), Budget: 65000, Platform: "TV & Digital", Target: "Sports Fans", Description: "Sponsorship of major summer sporting events"},
	{ID: "14", Name: "Email Re-engagement", Status: StatusPaused, StartDate: day(2025, time.July, 10), EndDate: day(2025, time.August, 10), Budget: 5200, Platform: "Email", Target: "Inactive Customers", Description: "Campaign to re-engage customers who haven't purchased recently"},
	{ID: "15", Name: "Winter Clearance", Status: StatusCompleted, StartDate: day(2025, time.January, 15), EndDate: day(2025, time.February, 28), Budget: 18000, Platform: "Multiple", Target: "All Segments", Description: "Clearance campaign for winter inventory"},
	{ID: "16", Name: "B2B Partnership", Status: StatusActive, StartDate: day(2025, time.June, 1), EndDate: day(2025, time.December, 31), Budget: 55000, Platform: "LinkedIn", Target: "Business Clients", Description: "Business-focused campaign targeting corporate partnerships"},
	{ID: "17", Name: "Local Store Promotion", Status: StatusActive, StartDate: day(2025, time.July, 1), EndDate: day(2025, time.August, 31), Budget: 12800, Platform: "Local SEO & Social", Target: "Local Customers", Description: "Geo-targeted campaign promoting in-store visits"},
	{ID: "18", Name: "Product Education Series", Status: StatusPaused, StartDate: day(2025, time.August, 1), EndDate: day(2025, time.October, 31), Budget: 16500, Platform: "YouTube", Target: "Product Researchers", Description: "Educational content series about product features and benefits"},
	{ID: "19", Name: "Fall Fashion Preview", Status: StatusActive, StartDate: day(2025, time.August, 1), EndDate: day(2025, time.September, 15), Budget: 21000, Platform: "Instagram", Target: "Fashion Followers", Description: "Preview campaign for the upcoming fall fashion collection"},
	{ID: "20", Name: "End of Summer Sale", Status: StatusActive, StartDate: day(2025, time.August, 15), EndDate: day(2025, time.September, 15), Budget: 19750, Platform: "All Digital", Target: "All Segments", Description: "Final summer merchandise clearance campaign"},
	{ID: "21", Name: "Anniversary Celebration", Status: StatusPaused, StartDate: day(2025, time.September, 1), EndDate: day(2025, time.September, 30), Budget: 32500, Platform: "Multiple", Target: "All Customers", Description: "Special campaign celebrating company anniversary"},
	{ID: "22", Name: "Student Discount Program", Status: StatusActive, StartDate: day(2025, time.August, 1), EndDate: day(2025, time.September, 30), Budget: 14200, Platform: "TikTok & Instagram", Target: "Students", Description: "Special discounts and promotions for students returning to school"},
}
