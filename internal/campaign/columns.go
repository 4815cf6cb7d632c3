package campaign

import (
	"strings"
	"time"

	"github.com/louisbranch/adpulse/internal/table"
)

// Column keys of the campaigns table.
const (
	ColumnName      = "name"
	ColumnStatus    = "status"
	ColumnStartDate = "startDate"
	ColumnEndDate   = "endDate"
	ColumnBudget    = "budget"
	ColumnPlatform  = "platform"
)

// DateLayout is the display format of campaign dates.
const DateLayout = "Jan 02, 2006"

// FormatDate renders t as "Jul 15, 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// RowID identifies a record by its campaign id.
func RowID(r Record) string {
	return r.ID
}

// SortIndicator renders the header arrow for a sort direction.
func SortIndicator(d table.Direction) string {
	switch d {
	case table.Asc:
		return "▲"
	case table.Desc:
		return "▼"
	default:
		return "⇅"
	}
}

// Columns returns the campaigns table column model, selection first.
func Columns() []table.Column[Record] {
	return []table.Column[Record]{
		table.SelectColumn[Record](),
		{
			Key:    ColumnName,
			Header: "Campaign Name",
			HeaderFunc: func(ctx table.HeaderContext) string {
				return "Campaign Name " + SortIndicator(ctx.SortDirection)
			},
			Value: func(r Record) any { return r.Name },
		},
		{
			Key:    ColumnStatus,
			Header: "Status",
			Value:  func(r Record) any { return r.Status },
			Filter: func(value any, filter string) bool {
				return strings.EqualFold(table.Stringify(value), strings.TrimSpace(filter))
			},
		},
		{
			Key:    ColumnStartDate,
			Header: "Start Date",
			Value:  func(r Record) any { return r.StartDate },
			Cell:   func(r Record, _ int) string { return FormatDate(r.StartDate) },
		},
		{
			Key:    ColumnEndDate,
			Header: "End Date",
			Value:  func(r Record) any { return r.EndDate },
			Cell:   func(r Record, _ int) string { return FormatDate(r.EndDate) },
		},
		{
			Key:    ColumnBudget,
			Header: "Budget",
			Value:  func(r Record) any { return r.Budget },
		},
		{
			Key:    ColumnPlatform,
			Header: "Platform",
			Value:  func(r Record) any { return r.Platform },
		},
	}
}

// NewEngine builds a campaigns table engine with selection, column
// visibility and export enabled.
func NewEngine(rows []Record, pageSize int) *table.Engine[Record] {
	return table.New(rows, Columns(), table.Options[Record]{
		PageSize:               pageSize,
		RowID:                  RowID,
		EnableRowSelection:     true,
		EnableColumnVisibility: true,
		EnableExport:           true,
	})
}
