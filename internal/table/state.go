package table

import "maps"

// Direction is a column sort direction.
type Direction string

const (
	Unsorted Direction = ""
	Asc      Direction = "asc"
	Desc     Direction = "desc"
)

// Next returns the direction that follows d in the none, asc, desc cycle.
func (d Direction) Next() Direction {
	switch d {
	case Unsorted:
		return Asc
	case Asc:
		return Desc
	default:
		return Unsorted
	}
}

// Valid reports whether d is Asc or Desc.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// SortEntry orders rows by one column. Earlier entries take priority.
type SortEntry struct {
	Key       string
	Direction Direction
}

// Pagination is the current page window.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// State is the full interaction state of a table.
type State struct {
	Sort             []SortEntry
	ColumnFilters    map[string]string
	GlobalFilter     string
	RowSelection     map[string]bool
	ColumnVisibility map[string]bool
	Pagination       Pagination
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.Sort != nil {
		out.Sort = append([]SortEntry(nil), s.Sort...)
	}
	out.ColumnFilters = maps.Clone(s.ColumnFilters)
	out.RowSelection = maps.Clone(s.RowSelection)
	out.ColumnVisibility = maps.Clone(s.ColumnVisibility)
	return out
}

func newState(pageSize int) State {
	return State{
		ColumnFilters:    map[string]string{},
		RowSelection:     map[string]bool{},
		ColumnVisibility: map[string]bool{},
		Pagination:       Pagination{PageSize: pageSize},
	}
}
