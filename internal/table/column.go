package table

import "strings"

// SelectColumnKey is the key of the synthetic row selection column.
const SelectColumnKey = "select"

// HeaderContext is the column state passed to a header render function.
type HeaderContext struct {
	// SortDirection is the column's current direction, Unsorted when absent.
	SortDirection Direction
	// SortIndex is the 0-based priority in the sort list, -1 when unsorted.
	SortIndex int
	// AllPageRowsSelected reports whether every row on the page is selected.
	AllPageRowsSelected bool
	// SomePageRowsSelected reports a partial page selection.
	SomePageRowsSelected bool
}

// Column describes how one field of T is labeled, read, rendered, sorted and
// filtered.
type Column[T any] struct {
	// Key uniquely identifies the column within a table.
	Key string
	// Header is the static label, also used as the CSV header.
	Header string
	// HeaderFunc renders an interactive label from column state. Optional.
	HeaderFunc func(HeaderContext) string
	// Value extracts the raw value used for sorting and filtering. A nil
	// result is treated as missing.
	Value func(row T) any
	// Cell renders the display text for a row. Defaults to Stringify(Value).
	Cell func(row T, index int) string
	// Filter overrides the default case-insensitive contains match used by
	// column filters.
	Filter func(value any, filter string) bool

	DisableSorting      bool
	DisableHiding       bool
	DisableGlobalFilter bool
}

// SelectColumn returns the synthetic selection column. It is never sortable,
// hideable, searchable or exported.
func SelectColumn[T any]() Column[T] {
	return Column[T]{
		Key:                 SelectColumnKey,
		DisableSorting:      true,
		DisableHiding:       true,
		DisableGlobalFilter: true,
	}
}

// Synthetic reports whether the column carries no row data.
func (c Column[T]) Synthetic() bool {
	return c.Key == SelectColumnKey
}

// Sortable reports whether ToggleSort applies to the column.
func (c Column[T]) Sortable() bool {
	return !c.Synthetic() && !c.DisableSorting && c.Value != nil
}

// Hideable reports whether the column visibility can be toggled.
func (c Column[T]) Hideable() bool {
	return !c.Synthetic() && !c.DisableHiding
}

// Searchable reports whether the global filter inspects the column.
func (c Column[T]) Searchable() bool {
	return !c.Synthetic() && !c.DisableGlobalFilter && c.Value != nil
}

// Label renders the header for the given column state.
func (c Column[T]) Label(ctx HeaderContext) string {
	if c.HeaderFunc != nil {
		return c.HeaderFunc(ctx)
	}
	return c.Header
}

// Render returns the display text for row.
func (c Column[T]) Render(row T, index int) string {
	if c.Cell != nil {
		return c.Cell(row, index)
	}
	if c.Value == nil {
		return ""
	}
	return Stringify(c.Value(row))
}

// RawValue returns the accessor value, or nil when the column has none.
func (c Column[T]) RawValue(row T) any {
	if c.Value == nil {
		return nil
	}
	return c.Value(row)
}

func (c Column[T]) matches(row T, filter string) bool {
	value := c.RawValue(row)
	if c.Filter != nil {
		return c.Filter(value, filter)
	}
	return containsFold(Stringify(value), filter)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
