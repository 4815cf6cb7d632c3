package table

import (
	"slices"
	"strconv"
)

// DefaultPageSize applies when Options.PageSize is not positive.
const DefaultPageSize = 10

// Options configures an Engine.
type Options[T any] struct {
	// PageSize is the initial page size.
	PageSize int
	// RowID returns a stable identity for a row. When nil, rows are
	// identified by their index in the source slice. Identities must be
	// unique; a repeated identity is suffixed with the row index.
	RowID func(row T) string

	EnableRowSelection     bool
	EnableColumnVisibility bool
	EnableExport           bool
}

// Engine derives a filtered, sorted and paginated projection of rows from
// its State.
type Engine[T any] struct {
	rows    []T
	ids     []string
	idIndex map[string]int

	columns []Column[T]
	byKey   map[string]int

	opts  Options[T]
	state State
}

type rowRef[T any] struct {
	index int
	row   T
}

// New builds an engine over rows with default state.
func New[T any](rows []T, columns []Column[T], opts Options[T]) *Engine[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	e := &Engine[T]{
		columns: append([]Column[T](nil), columns...),
		byKey:   make(map[string]int, len(columns)),
		opts:    opts,
		state:   newState(opts.PageSize),
	}
	for i, col := range e.columns {
		if _, dup := e.byKey[col.Key]; !dup {
			e.byKey[col.Key] = i
		}
	}
	e.setRows(rows)
	return e
}

// Options returns the feature flags the engine was built with.
func (e *Engine[T]) Options() Options[T] {
	return e.opts
}

// Columns returns every declared column in order.
func (e *Engine[T]) Columns() []Column[T] {
	return append([]Column[T](nil), e.columns...)
}

// Column looks up a column by key.
func (e *Engine[T]) Column(key string) (Column[T], bool) {
	i, ok := e.byKey[key]
	if !ok {
		return Column[T]{}, false
	}
	return e.columns[i], true
}

// VisibleColumns returns declared columns not hidden by ColumnVisibility.
func (e *Engine[T]) VisibleColumns() []Column[T] {
	out := make([]Column[T], 0, len(e.columns))
	for _, col := range e.columns {
		if visible, ok := e.state.ColumnVisibility[col.Key]; ok && !visible {
			continue
		}
		out = append(out, col)
	}
	return out
}

// IsColumnVisible reports whether key is declared and not hidden.
func (e *Engine[T]) IsColumnVisible(key string) bool {
	if _, ok := e.byKey[key]; !ok {
		return false
	}
	visible, ok := e.state.ColumnVisibility[key]
	return !ok || visible
}

// State returns a copy of the current state.
func (e *Engine[T]) State() State {
	return e.state.Clone()
}

// Len returns the number of source rows.
func (e *Engine[T]) Len() int {
	return len(e.rows)
}

// RowID returns the identity of the source row at index.
func (e *Engine[T]) RowID(index int) string {
	if index < 0 || index >= len(e.ids) {
		return ""
	}
	return e.ids[index]
}

// SetRows replaces the source rows. Selections of rows that disappeared are
// pruned and the page index is clamped to the new bounds.
func (e *Engine[T]) SetRows(rows []T) {
	e.setRows(rows)
	e.clampPage()
}

func (e *Engine[T]) setRows(rows []T) {
	e.rows = append([]T(nil), rows...)
	e.ids = make([]string, len(e.rows))
	e.idIndex = make(map[string]int, len(e.rows))
	for i, row := range e.rows {
		id := strconv.Itoa(i)
		if e.opts.RowID != nil {
			id = e.opts.RowID(row)
		}
		if _, dup := e.idIndex[id]; dup {
			id += "#" + strconv.Itoa(i)
		}
		e.ids[i] = id
		e.idIndex[id] = i
	}
	for id := range e.state.RowSelection {
		if _, ok := e.idIndex[id]; !ok {
			delete(e.state.RowSelection, id)
		}
	}
}

// SetGlobalFilter replaces the search text and returns to the first page.
func (e *Engine[T]) SetGlobalFilter(text string) {
	e.state.GlobalFilter = text
	e.state.Pagination.PageIndex = 0
}

// SetColumnFilter filters one column by value. An empty value clears the
// filter. Unknown keys are ignored.
func (e *Engine[T]) SetColumnFilter(key, value string) {
	col, ok := e.Column(key)
	if !ok || col.Synthetic() {
		return
	}
	if value == "" {
		delete(e.state.ColumnFilters, key)
	} else {
		e.state.ColumnFilters[key] = value
	}
	e.state.Pagination.PageIndex = 0
}

// SortDirection returns the direction key is sorted in.
func (e *Engine[T]) SortDirection(key string) Direction {
	if i := e.sortIndex(key); i >= 0 {
		return e.state.Sort[i].Direction
	}
	return Unsorted
}

func (e *Engine[T]) sortIndex(key string) int {
	return slices.IndexFunc(e.state.Sort, func(s SortEntry) bool { return s.Key == key })
}

// ToggleSort advances key through none, asc and desc. Without additive the
// sort list is replaced by the single entry for key; with additive the
// entry is updated in place or appended, keeping other keys. Unknown and
// unsortable keys are ignored.
func (e *Engine[T]) ToggleSort(key string, additive bool) {
	col, ok := e.Column(key)
	if !ok || !col.Sortable() {
		return
	}
	i := e.sortIndex(key)
	current := Unsorted
	if i >= 0 {
		current = e.state.Sort[i].Direction
	}
	next := current.Next()

	if !additive {
		if next == Unsorted {
			e.state.Sort = nil
		} else {
			e.state.Sort = []SortEntry{{Key: key, Direction: next}}
		}
		e.state.Pagination.PageIndex = 0
		return
	}

	switch {
	case i < 0:
		e.state.Sort = append(e.state.Sort, SortEntry{Key: key, Direction: next})
	case next == Unsorted:
		e.state.Sort = slices.Delete(e.state.Sort, i, i+1)
	default:
		e.state.Sort[i].Direction = next
	}
	e.state.Pagination.PageIndex = 0
}

// SetSort replaces the sort list. Entries with unknown or unsortable keys,
// invalid directions or repeated keys are dropped.
func (e *Engine[T]) SetSort(entries []SortEntry) {
	e.state.Sort = e.sanitizeSort(entries)
	e.state.Pagination.PageIndex = 0
}

func (e *Engine[T]) sanitizeSort(entries []SortEntry) []SortEntry {
	var out []SortEntry
	seen := map[string]bool{}
	for _, entry := range entries {
		col, ok := e.Column(entry.Key)
		if !ok || !col.Sortable() || !entry.Direction.Valid() || seen[entry.Key] {
			continue
		}
		seen[entry.Key] = true
		out = append(out, entry)
	}
	return out
}

// PageCount returns the number of pages in the filtered projection.
func (e *Engine[T]) PageCount() int {
	return pageCount(len(e.filtered()), e.state.Pagination.PageSize)
}

func pageCount(total, size int) int {
	if total == 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// SetPageIndex moves to page n, clamped to the available pages.
func (e *Engine[T]) SetPageIndex(n int) {
	e.state.Pagination.PageIndex = n
	e.clampPage()
}

// NextPage advances one page when possible.
func (e *Engine[T]) NextPage() {
	e.SetPageIndex(e.state.Pagination.PageIndex + 1)
}

// PreviousPage goes back one page when possible.
func (e *Engine[T]) PreviousPage() {
	e.SetPageIndex(e.state.Pagination.PageIndex - 1)
}

// CanNextPage reports whether a later page exists.
func (e *Engine[T]) CanNextPage() bool {
	return e.state.Pagination.PageIndex+1 < e.PageCount()
}

// CanPreviousPage reports whether an earlier page exists.
func (e *Engine[T]) CanPreviousPage() bool {
	return e.state.Pagination.PageIndex > 0
}

// SetPageSize changes the page size, keeping the first visible row on
// screen. Sizes below one are raised to one.
func (e *Engine[T]) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	p := e.state.Pagination
	top := p.PageIndex * p.PageSize
	e.state.Pagination = Pagination{PageIndex: top / n, PageSize: n}
	e.clampPage()
}

func (e *Engine[T]) clampPage() {
	count := e.PageCount()
	idx := e.state.Pagination.PageIndex
	switch {
	case count == 0 || idx < 0:
		idx = 0
	case idx >= count:
		idx = count - 1
	}
	e.state.Pagination.PageIndex = idx
}

// ToggleRowSelected selects or clears the row with id. Ids not present in
// the source rows are ignored.
func (e *Engine[T]) ToggleRowSelected(id string, selected bool) {
	if !e.opts.EnableRowSelection {
		return
	}
	if _, ok := e.idIndex[id]; !ok {
		return
	}
	if selected {
		e.state.RowSelection[id] = true
	} else {
		delete(e.state.RowSelection, id)
	}
}

// IsRowSelected reports whether id is selected.
func (e *Engine[T]) IsRowSelected(id string) bool {
	return e.state.RowSelection[id]
}

// ToggleAllPageRowsSelected applies selected to every row on the current
// page only.
func (e *Engine[T]) ToggleAllPageRowsSelected(selected bool) {
	if !e.opts.EnableRowSelection {
		return
	}
	for _, ref := range e.page() {
		id := e.ids[ref.index]
		if selected {
			e.state.RowSelection[id] = true
		} else {
			delete(e.state.RowSelection, id)
		}
	}
}

// IsAllPageRowsSelected reports whether the page is non-empty and fully
// selected.
func (e *Engine[T]) IsAllPageRowsSelected() bool {
	page := e.page()
	if len(page) == 0 {
		return false
	}
	for _, ref := range page {
		if !e.state.RowSelection[e.ids[ref.index]] {
			return false
		}
	}
	return true
}

// IsSomePageRowsSelected reports a partial selection of the page.
func (e *Engine[T]) IsSomePageRowsSelected() bool {
	selected := 0
	page := e.page()
	for _, ref := range page {
		if e.state.RowSelection[e.ids[ref.index]] {
			selected++
		}
	}
	return selected > 0 && selected < len(page)
}

// SelectedCount returns the number of selected rows.
func (e *Engine[T]) SelectedCount() int {
	return len(e.state.RowSelection)
}

// ResetSelection clears every selected row.
func (e *Engine[T]) ResetSelection() {
	clear(e.state.RowSelection)
}

// ToggleColumnVisibility shows or hides a column. Unknown and non-hideable
// keys are ignored.
func (e *Engine[T]) ToggleColumnVisibility(key string, visible bool) {
	if !e.opts.EnableColumnVisibility {
		return
	}
	col, ok := e.Column(key)
	if !ok || !col.Hideable() {
		return
	}
	if visible {
		delete(e.state.ColumnVisibility, key)
	} else {
		e.state.ColumnVisibility[key] = false
	}
}

// SetState replaces the whole state, dropping entries that refer to unknown
// columns or rows and clamping the page.
func (e *Engine[T]) SetState(s State) {
	next := newState(e.state.Pagination.PageSize)
	next.Sort = e.sanitizeSort(s.Sort)
	next.GlobalFilter = s.GlobalFilter
	for key, value := range s.ColumnFilters {
		if col, ok := e.Column(key); ok && !col.Synthetic() && value != "" {
			next.ColumnFilters[key] = value
		}
	}
	if e.opts.EnableRowSelection {
		for id, selected := range s.RowSelection {
			if _, ok := e.idIndex[id]; ok && selected {
				next.RowSelection[id] = true
			}
		}
	}
	if e.opts.EnableColumnVisibility {
		for key, visible := range s.ColumnVisibility {
			if col, ok := e.Column(key); ok && col.Hideable() && !visible {
				next.ColumnVisibility[key] = false
			}
		}
	}
	if s.Pagination.PageSize > 0 {
		next.Pagination.PageSize = s.Pagination.PageSize
	}
	next.Pagination.PageIndex = s.Pagination.PageIndex
	e.state = next
	e.clampPage()
}

// FilteredRows returns the source rows passing the global and column
// filters, in source order.
func (e *Engine[T]) FilteredRows() []T {
	return rowsOf(e.filtered())
}

// SortedRows returns FilteredRows ordered by the sort list.
func (e *Engine[T]) SortedRows() []T {
	return rowsOf(e.sorted())
}

// PageRows returns the current page of SortedRows.
func (e *Engine[T]) PageRows() []T {
	return rowsOf(e.page())
}

// PageRowIDs returns the identities of the rows on the current page.
func (e *Engine[T]) PageRowIDs() []string {
	page := e.page()
	ids := make([]string, len(page))
	for i, ref := range page {
		ids[i] = e.ids[ref.index]
	}
	return ids
}

// SelectedRows resolves the selection against all source rows in source
// order, regardless of filters and pages.
func (e *Engine[T]) SelectedRows() []T {
	var out []T
	for i, row := range e.rows {
		if e.state.RowSelection[e.ids[i]] {
			out = append(out, row)
		}
	}
	return out
}

// CanHideColumns reports whether column visibility may change.
func (e *Engine[T]) CanHideColumns() bool {
	return e.opts.EnableColumnVisibility
}

// CanExport reports whether the engine offers rows for export.
func (e *Engine[T]) CanExport() bool {
	return e.opts.EnableExport
}

// ExportRows returns the selected rows when any are selected, else every
// filtered row in source order. It returns nil when export is disabled.
func (e *Engine[T]) ExportRows() []T {
	if !e.opts.EnableExport {
		return nil
	}
	if len(e.state.RowSelection) > 0 {
		return e.SelectedRows()
	}
	return e.FilteredRows()
}

// FilteredCount returns the size of the filtered projection.
func (e *Engine[T]) FilteredCount() int {
	return len(e.filtered())
}

// PageRange returns the 1-based bounds of the current page and the filtered
// total, as in "Showing 6 to 10 of 22". Both bounds are 0 when empty.
func (e *Engine[T]) PageRange() (from, to, total int) {
	total = len(e.filtered())
	n := len(e.page())
	if n == 0 {
		return 0, 0, total
	}
	from = e.state.Pagination.PageIndex*e.state.Pagination.PageSize + 1
	return from, from + n - 1, total
}

// HeaderContext returns the render state for the column header key.
func (e *Engine[T]) HeaderContext(key string) HeaderContext {
	ctx := HeaderContext{SortIndex: e.sortIndex(key)}
	if ctx.SortIndex >= 0 {
		ctx.SortDirection = e.state.Sort[ctx.SortIndex].Direction
	}
	if key == SelectColumnKey {
		ctx.AllPageRowsSelected = e.IsAllPageRowsSelected()
		ctx.SomePageRowsSelected = e.IsSomePageRowsSelected()
	}
	return ctx
}

func (e *Engine[T]) filtered() []rowRef[T] {
	out := make([]rowRef[T], 0, len(e.rows))
	for i, row := range e.rows {
		if e.passes(row) {
			out = append(out, rowRef[T]{index: i, row: row})
		}
	}
	return out
}

func (e *Engine[T]) passes(row T) bool {
	for key, filter := range e.state.ColumnFilters {
		col, ok := e.Column(key)
		if !ok {
			continue
		}
		if !col.matches(row, filter) {
			return false
		}
	}
	if e.state.GlobalFilter == "" {
		return true
	}
	for _, col := range e.columns {
		if col.Searchable() && containsFold(Stringify(col.RawValue(row)), e.state.GlobalFilter) {
			return true
		}
	}
	return false
}

func (e *Engine[T]) sorted() []rowRef[T] {
	refs := e.filtered()
	if len(e.state.Sort) == 0 {
		return refs
	}
	cols := make([]Column[T], len(e.state.Sort))
	for i, entry := range e.state.Sort {
		cols[i], _ = e.Column(entry.Key)
	}
	slices.SortStableFunc(refs, func(a, b rowRef[T]) int {
		for i, entry := range e.state.Sort {
			av, bv := cols[i].RawValue(a.row), cols[i].RawValue(b.row)
			c := Compare(av, bv)
			if c == 0 {
				continue
			}
			// Missing values stay first in both directions.
			if entry.Direction == Desc && !isMissing(av) && !isMissing(bv) {
				c = -c
			}
			return c
		}
		return 0
	})
	return refs
}

func (e *Engine[T]) page() []rowRef[T] {
	refs := e.sorted()
	size := e.state.Pagination.PageSize
	start := e.state.Pagination.PageIndex * size
	if start < 0 || start >= len(refs) {
		return nil
	}
	end := min(start+size, len(refs))
	return refs[start:end]
}

func rowsOf[T any](refs []rowRef[T]) []T {
	out := make([]T, len(refs))
	for i, ref := range refs {
		out[i] = ref.row
	}
	return out
}
