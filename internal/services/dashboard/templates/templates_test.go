package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/louisbranch/adpulse/internal/theme"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attrValue(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll collects element nodes with tag and class.
func findAll(root *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && (class == "" || hasClass(n, class)) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func sampleTable() CampaignTableView {
	return CampaignTableView{
		Headers: []HeaderCell{
			{Key: "select", Select: true, SomeSelected: true},
			{Key: "name", Label: "Campaign Name", Sortable: true, Direction: "asc", SortIndex: 1},
			{Key: "status", Label: "Status", Sortable: true},
		},
		Rows: []RowView{
			{ID: "1", Selected: true, Cells: []CellView{{Key: "name", Text: "Summer <Sale>"}, {Key: "status", Text: "Active", Badge: "success"}}},
			{ID: "2", Cells: []CellView{{Key: "name", Text: "Winter"}, {Key: "status", Text: "Paused", Badge: "warning"}}},
		},
		PageIndex:     0,
		PageCount:     3,
		PageSize:      5,
		PageSizes:     []int{5, 10},
		CanNext:       true,
		Summary:       "Showing 1 to 2 of 12 entries",
		SelectedCount: 1,
		ViewMenu:      MenuView{ID: "view-menu", Trigger: "View"},
		ExportHref:    "/campaigns/export",
	}
}

func TestCampaignTableRendersRows(t *testing.T) {
	doc := parse(t, render(t, context.Background(), CampaignTable(sampleTable())))

	rows := findAll(doc, "tr", "data-row")
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if id, _ := attrValue(rows[0], "data-row-id"); id != "1" {
		t.Fatalf("expected first row id 1, got %q", id)
	}
	if !hasClass(rows[0], "selected") || hasClass(rows[1], "selected") {
		t.Fatal("expected only the first row selected")
	}
	if got := textOf(rows[0]); !strings.Contains(got, "Summer <Sale>") {
		t.Fatalf("expected unescaped text in node, got %q", got)
	}
	badges := findAll(doc, "span", "badge-warning")
	if len(badges) != 1 || textOf(badges[0]) != "Paused" {
		t.Fatalf("expected one paused badge, got %d", len(badges))
	}
	if len(findAll(doc, "tr", "empty-row")) != 0 {
		t.Fatal("expected no empty row")
	}
}

func TestCampaignTableEscapesCellText(t *testing.T) {
	markup := render(t, context.Background(), CampaignTable(sampleTable()))
	if strings.Contains(markup, "<Sale>") {
		t.Fatal("expected cell text escaped")
	}
	if !strings.Contains(markup, "Summer &lt;Sale&gt;") {
		t.Fatal("expected escaped cell text")
	}
}

func TestCampaignTableOmitsDisabledActions(t *testing.T) {
	doc := parse(t, render(t, context.Background(), CampaignTable(sampleTable())))
	if len(findAll(doc, "div", "dropdown")) != 1 || len(findAll(doc, "a", "export-btn")) != 1 {
		t.Fatal("expected view menu and export link")
	}

	view := sampleTable()
	view.ViewMenu = MenuView{}
	view.ExportHref = ""
	doc = parse(t, render(t, context.Background(), CampaignTable(view)))
	if len(findAll(doc, "div", "dropdown")) != 0 {
		t.Fatal("expected view menu omitted")
	}
	if len(findAll(doc, "a", "export-btn")) != 0 {
		t.Fatal("expected export link omitted")
	}
}

func TestCampaignTableEmptyState(t *testing.T) {
	view := sampleTable()
	view.Rows = nil
	doc := parse(t, render(t, context.Background(), CampaignTable(view)))
	empty := findAll(doc, "td", "no-results")
	if len(empty) != 1 || textOf(empty[0]) != "No results." {
		t.Fatal("expected no results cell")
	}
	if span, _ := attrValue(empty[0], "colspan"); span != "3" {
		t.Fatalf("expected colspan 3, got %q", span)
	}
}

func TestCampaignTableHeadersAndPagination(t *testing.T) {
	doc := parse(t, render(t, context.Background(), CampaignTable(sampleTable())))

	headers := findAll(doc, "th", "")
	if len(headers) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(headers))
	}
	if sort, _ := attrValue(headers[1], "aria-sort"); sort != "ascending" {
		t.Fatalf("expected ascending sort, got %q", sort)
	}
	if _, ok := attrValue(headers[2], "aria-sort"); ok {
		t.Fatal("expected unsorted status header")
	}

	buttons := findAll(doc, "button", "btn-outline")
	var prev, next *html.Node
	for _, b := range buttons {
		switch v, _ := attrValue(b, "data-page"); v {
		case "prev":
			prev = b
		case "next":
			next = b
		}
	}
	if prev == nil || next == nil {
		t.Fatal("expected prev and next buttons")
	}
	if _, disabled := attrValue(prev, "disabled"); !disabled {
		t.Fatal("expected prev disabled on first page")
	}
	if _, disabled := attrValue(next, "disabled"); disabled {
		t.Fatal("expected next enabled")
	}
	indicator := findAll(doc, "span", "page-indicator")
	if len(indicator) != 1 || textOf(indicator[0]) != "Page 1 of 3" {
		t.Fatal("expected page indicator")
	}
}

func TestDropdownMenuRendersPopupWhenOpen(t *testing.T) {
	closed := MenuView{ID: "view-menu", Trigger: "View"}
	doc := parse(t, render(t, context.Background(), DropdownMenu(closed, "/menu", "#t")))
	if len(findAll(doc, "div", "dropdown-content")) != 0 {
		t.Fatal("expected no popup while closed")
	}

	sub := &MenuView{Path: "2", Open: true, Items: []MenuItemView{{Index: 0, Label: "5", Kind: MenuItemCheckbox, Checked: true}}}
	open := MenuView{
		ID: "view-menu", Trigger: "View", Open: true, Pending: true,
		Items: []MenuItemView{
			{Index: 0, Label: "Columns", Kind: MenuItemLabel},
			{Index: 1, Label: "Status", Kind: MenuItemCheckbox, Checked: true, Focused: true},
			{Index: 2, Label: "Rows per page", Kind: MenuItemSubmenu, Expanded: true, Submenu: sub},
			{Index: 3, Kind: MenuItemSeparator},
			{Index: 4, Label: "Reset", Kind: MenuItemAction, Disabled: true},
		},
	}
	doc = parse(t, render(t, context.Background(), DropdownMenu(open, "/menu", "#t")))
	popups := findAll(doc, "div", "dropdown-content")
	if len(popups) != 2 {
		t.Fatalf("expected root and submenu popups, got %d", len(popups))
	}
	if trigger, _ := attrValue(popups[0], "hx-trigger"); trigger != "load delay:150ms" {
		t.Fatalf("expected pending refresh trigger, got %q", trigger)
	}
	items := findAll(doc, "div", "dropdown-menu-item")
	if len(items) != 4 {
		t.Fatalf("expected 4 interactive entries, got %d", len(items))
	}
	if checked, _ := attrValue(items[0], "aria-checked"); checked != "true" || !hasClass(items[0], "focused") {
		t.Fatal("expected focused checked status item")
	}
	disabled := items[len(items)-1]
	if _, ok := attrValue(disabled, "hx-post"); ok {
		t.Fatal("expected disabled item without event post")
	}
	if vals, _ := attrValue(items[2], "hx-vals"); !strings.Contains(vals, `"path":"2"`) {
		t.Fatalf("expected submenu item addressed by path, got %q", vals)
	}
}

func TestLayoutAppliesThemeClass(t *testing.T) {
	tc, _ := theme.Init(context.Background(), nil, "", theme.Dark)
	ctx := theme.WithContext(context.Background(), tc)
	body := templ.Raw("<p>hi</p>")
	doc := parse(t, render(t, ctx, Layout(PageContext{Title: "Campaigns", Active: NavCampaigns}, body)))

	bodies := findAll(doc, "body", "dark-mode")
	if len(bodies) != 1 {
		t.Fatal("expected dark body class")
	}
	titles := findAll(doc, "title", "")
	if len(titles) != 1 || textOf(titles[0]) != "Campaigns | AdPulse" {
		t.Fatal("expected composed title")
	}
	active := findAll(doc, "a", "active")
	if len(active) != 1 || textOf(active[0]) != "Campaigns" {
		t.Fatal("expected campaigns nav active")
	}
	mains := findAll(doc, "main", "")
	if len(mains) != 1 || textOf(mains[0]) != "hi" {
		t.Fatal("expected body inside main")
	}
}

func TestLayoutDefaultsToLight(t *testing.T) {
	doc := parse(t, render(t, context.Background(), Layout(PageContext{}, nil)))
	if len(findAll(doc, "body", "light-mode")) != 1 {
		t.Fatal("expected light body class")
	}
}

func TestCommandPalette(t *testing.T) {
	if got := render(t, context.Background(), CommandPalette(CommandPaletteView{})); got != "" {
		t.Fatalf("expected closed palette to render nothing, got %q", got)
	}
	view := CommandPaletteView{
		Open:  true,
		Query: "go",
		Groups: []CommandGroupView{{Heading: "Navigation", Commands: []CommandView{
			{ID: "dashboard", Label: "Go to Dashboard", Href: "/", Index: 0, Focused: true},
			{ID: "campaigns", Label: "Go to Campaigns", Href: "/campaigns", Index: 1},
		}}},
	}
	doc := parse(t, render(t, context.Background(), CommandPalette(view)))
	items := findAll(doc, "button", "command-item")
	if len(items) != 2 || !hasClass(items[0], "focused") {
		t.Fatalf("expected two items with the first focused, got %d", len(items))
	}

	view.Groups, view.Empty = nil, true
	doc = parse(t, render(t, context.Background(), CommandPalette(view)))
	if len(findAll(doc, "div", "command-empty")) != 1 {
		t.Fatal("expected empty state")
	}
}

func TestComposePageTitle(t *testing.T) {
	if ComposePageTitle("") != "AdPulse" || ComposePageTitle("Settings") != "Settings | AdPulse" {
		t.Fatal("unexpected page titles")
	}
}

func TestHrefSanitizesURLs(t *testing.T) {
	link := func(u string) templ.Component {
		return component(func(_ context.Context, hw *htmlWriter) {
			hw.raw("<a")
			hw.href(u)
			hw.raw("></a>")
		})
	}
	if got := render(t, context.Background(), link("javascript:alert(1)")); strings.Contains(got, "javascript") {
		t.Fatalf("expected unsafe scheme replaced, got %s", got)
	}
	got := render(t, context.Background(), link("/campaigns?q=a&page=2"))
	if got != `<a href="/campaigns?q=a&amp;page=2"></a>` {
		t.Fatalf("unexpected markup %s", got)
	}
}
