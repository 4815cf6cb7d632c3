package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
)

// TableTarget is the element id every table fragment replaces.
const TableTarget = "campaign-table"

// HeaderCell is one rendered column header.
type HeaderCell struct {
	Key      string
	Label    string
	Sortable bool
	// Direction is "asc", "desc" or empty.
	Direction string
	// SortIndex is the 1-based position in a multi-column sort, 0 if unsorted.
	SortIndex int
	// Select marks the synthetic selection column.
	Select       bool
	AllSelected  bool
	SomeSelected bool
}

// CellView is one rendered cell.
type CellView struct {
	Key  string
	Text string
	// Badge is the status badge variant, empty for plain cells.
	Badge string
}

// RowView is one rendered table row.
type RowView struct {
	ID       string
	Selected bool
	Cells    []CellView
}

// FilterOption is one choice of a column filter select.
type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

// ColumnFilterView is a select bound to one column filter.
type ColumnFilterView struct {
	Key     string
	Label   string
	Options []FilterOption
}

// CampaignTableView provides data for the campaigns table fragment.
type CampaignTableView struct {
	Headers   []HeaderCell
	Rows      []RowView
	Query     string
	Filters   []ColumnFilterView
	PageIndex int
	PageCount int
	PageSize  int
	PageSizes []int
	CanPrev   bool
	CanNext   bool
	// Summary reads "Showing 1 to 5 of 22 entries".
	Summary       string
	SelectedCount int
	// ViewMenu is omitted when its ID is empty.
	ViewMenu   MenuView
	ExportHref string
	// Notice reports request parts that were ignored.
	Notice string
	// PushURL is the shareable URL of the current state.
	PushURL string
}

// CampaignsPage renders the campaigns page content.
func CampaignsPage(view CampaignTableView) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<section class="page campaigns"><div class="page-head"><h1>Campaigns</h1>`)
		hw.raw(`<p class="muted">Manage and track your marketing campaigns.</p></div>`)
		hw.component(ctx, CampaignTable(view))
		hw.raw(`</section>`)
	})
}

// CampaignTable renders the interactive table fragment.
func CampaignTable(view CampaignTableView) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<div class="data-table-container"`)
		hw.attr("id", TableTarget)
		hw.raw(`>`)
		if view.Notice != "" {
			hw.raw(`<div class="notice" role="status">`)
			hw.text(view.Notice)
			hw.raw(`</div>`)
		}
		hw.component(ctx, tableToolbar(view))
		hw.raw(`<div class="table-container"><table class="data-table"><thead><tr>`)
		for _, header := range view.Headers {
			hw.component(ctx, headerCell(header))
		}
		hw.raw(`</tr></thead><tbody>`)
		if len(view.Rows) == 0 {
			hw.raw(`<tr class="empty-row"><td class="no-results"`)
			hw.attr("colspan", itoa(max(len(view.Headers), 1)))
			hw.raw(`>No results.</td></tr>`)
		}
		for _, row := range view.Rows {
			hw.component(ctx, tableRow(view.Headers, row))
		}
		hw.raw(`</tbody></table></div>`)
		hw.component(ctx, tablePagination(view))
		hw.raw(`</div>`)
	})
}

func tableToolbar(view CampaignTableView) templ.Component {
	return component(func(ctx context.Context, hw *htmlWriter) {
		hw.raw(`<div class="data-table-header"><div class="search-filter">`)
		hw.raw(`<input type="search" name="q" class="search-input" placeholder="Search campaigns..."`)
		hw.attr("value", view.Query)
		hw.attr("hx-post", routepath.TableSearch)
		hw.attr("hx-trigger", "input changed delay:300ms, search")
		hw.attr("hx-target", "#"+TableTarget)
		hw.attr("hx-swap", "outerHTML")
		hw.raw(`>`)
		for _, filter := range view.Filters {
			hw.raw(`<select name="value" class="column-filter"`)
			hw.attr("aria-label", filter.Label)
			hw.attr("hx-post", routepath.TableFilter)
			hw.attr("hx-vals", `{"column":"`+filter.Key+`"}`)
			hw.attr("hx-target", "#"+TableTarget)
			hw.attr("hx-swap", "outerHTML")
			hw.raw(`><option value="">All `)
			hw.text(filter.Label)
			hw.raw(`</option>`)
			for _, opt := range filter.Options {
				hw.raw(`<option`)
				hw.attr("value", opt.Value)
				hw.flag("selected", opt.Selected)
				hw.raw(`>`)
				hw.text(opt.Label)
				hw.raw(`</option>`)
			}
			hw.raw(`</select>`)
		}
		hw.raw(`</div><div class="table-actions">`)
		if view.ViewMenu.ID != "" {
			hw.component(ctx, DropdownMenu(view.ViewMenu, routepath.TableMenu, "#"+TableTarget))
		}
		if view.ExportHref != "" {
			hw.raw(`<a class="btn btn-outline export-btn" download`)
			hw.href(view.ExportHref)
			hw.raw(`>Export`)
			if view.SelectedCount > 0 {
				hw.text(" (" + itoa(view.SelectedCount) + ")")
			}
			hw.raw(`</a>`)
		}
		hw.raw(`</div></div>`)
	})
}

func headerCell(header HeaderCell) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<th`)
		hw.attr("data-column", header.Key)
		switch header.Direction {
		case "asc":
			hw.attr("aria-sort", "ascending")
		case "desc":
			hw.attr("aria-sort", "descending")
		}
		hw.raw(`>`)
		switch {
		case header.Select:
			hw.raw(`<input type="checkbox" name="selected" value="true" aria-label="Select all"`)
			hw.flag("checked", header.AllSelected)
			if header.SomeSelected {
				hw.attr("data-indeterminate", "true")
			}
			hw.attr("hx-post", routepath.TableSelectPage)
			hw.attr("hx-vals", `{"selected":"`+boolString(!header.AllSelected)+`"}`)
			hw.attr("hx-target", "#"+TableTarget)
			hw.attr("hx-swap", "outerHTML")
			hw.raw(`>`)
		case header.Sortable:
			hw.raw(`<button type="button" class="sortable-header"`)
			hw.attr("hx-post", routepath.TableSort)
			hw.attr("hx-vals", `{"column":"`+header.Key+`"}`)
			hw.attr("hx-target", "#"+TableTarget)
			hw.attr("hx-swap", "outerHTML")
			hw.raw(`>`)
			hw.text(header.Label)
			if header.SortIndex > 0 {
				hw.raw(`<sup class="sort-index">`)
				hw.text(itoa(header.SortIndex))
				hw.raw(`</sup>`)
			}
			hw.raw(`</button>`)
		default:
			hw.text(header.Label)
		}
		hw.raw(`</th>`)
	})
}

func tableRow(headers []HeaderCell, row RowView) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<tr`)
		class := "data-row"
		if row.Selected {
			class += " selected"
		}
		hw.attr("class", class)
		hw.attr("data-row-id", row.ID)
		hw.raw(`>`)
		cell := 0
		for _, header := range headers {
			if header.Select {
				hw.raw(`<td class="select-cell"><input type="checkbox" name="selected" value="true"`)
				hw.attr("aria-label", "Select row")
				hw.flag("checked", row.Selected)
				hw.attr("hx-post", routepath.TableSelect)
				hw.attr("hx-vals", `{"id":"`+row.ID+`","selected":"`+boolString(!row.Selected)+`"}`)
				hw.attr("hx-target", "#"+TableTarget)
				hw.attr("hx-swap", "outerHTML")
				hw.raw(`></td>`)
				continue
			}
			if cell >= len(row.Cells) {
				hw.raw(`<td></td>`)
				continue
			}
			c := row.Cells[cell]
			cell++
			hw.raw(`<td`)
			hw.attr("data-column", c.Key)
			hw.raw(`>`)
			if c.Badge != "" {
				hw.raw(`<span`)
				hw.attr("class", "badge badge-"+c.Badge)
				hw.raw(`>`)
				hw.text(c.Text)
				hw.raw(`</span>`)
			} else {
				hw.text(c.Text)
			}
			hw.raw(`</td>`)
		}
		hw.raw(`</tr>`)
	})
}

func tablePagination(view CampaignTableView) templ.Component {
	return component(func(_ context.Context, hw *htmlWriter) {
		hw.raw(`<div class="pagination"><div class="pagination-info">`)
		hw.text(view.Summary)
		if view.SelectedCount > 0 {
			hw.raw(` <span class="selected-count">`)
			hw.text(itoa(view.SelectedCount) + " selected")
			hw.raw(`</span>`)
		}
		hw.raw(`</div><div class="pagination-controls">`)
		hw.raw(`<select name="size" aria-label="Rows per page"`)
		hw.attr("hx-post", routepath.TablePageSize)
		hw.attr("hx-target", "#"+TableTarget)
		hw.attr("hx-swap", "outerHTML")
		hw.raw(`>`)
		for _, size := range view.PageSizes {
			hw.raw(`<option`)
			hw.attr("value", itoa(size))
			hw.flag("selected", size == view.PageSize)
			hw.raw(`>`)
			hw.text(itoa(size) + " / page")
			hw.raw(`</option>`)
		}
		hw.raw(`</select>`)
		pageButton(hw, "prev", "Previous", !view.CanPrev)
		hw.raw(`<span class="page-indicator">Page `)
		hw.text(itoa(view.PageIndex+1) + " of " + itoa(max(view.PageCount, 1)))
		hw.raw(`</span>`)
		pageButton(hw, "next", "Next", !view.CanNext)
		hw.raw(`</div></div>`)
	})
}

func pageButton(hw *htmlWriter, action, label string, disabled bool) {
	hw.raw(`<button type="button" class="btn btn-outline"`)
	hw.attr("data-page", action)
	hw.flag("disabled", disabled)
	hw.attr("hx-post", routepath.TablePage)
	hw.attr("hx-vals", `{"action":"`+action+`"}`)
	hw.attr("hx-target", "#"+TableTarget)
	hw.attr("hx-swap", "outerHTML")
	hw.raw(`>`)
	hw.text(label)
	hw.raw(`</button>`)
}
