package table

import (
	"slices"
	"testing"
	"time"
)

func TestStringify(t *testing.T) {
	var nilTime *time.Time
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string", value: "Facebook", want: "Facebook"},
		{name: "int", value: 42, want: "42"},
		{name: "time", value: time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), want: "2025-07-15"},
		{name: "zero time", value: time.Time{}, want: ""},
		{name: "nil time pointer", value: nilTime, want: ""},
		{name: "bool", value: true, want: "true"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(tc.value); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	early := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 1, 0)
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "nil first", a: nil, b: "a", want: -1},
		{name: "nil last", a: 1, b: nil, want: 1},
		{name: "both nil", a: nil, b: nil, want: 0},
		{name: "numeric not lexical", a: 9, b: 10, want: -1},
		{name: "mixed numeric kinds", a: int64(3), b: 2.5, want: 1},
		{name: "time", a: late, b: early, want: 1},
		{name: "case insensitive", a: "apple", b: "Banana", want: -1},
		{name: "equal fold", a: "Active", b: "active", want: 0},
		{name: "bool", a: false, b: true, want: -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compare(tc.a, tc.b); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

type score struct {
	name  string
	value *int
}

func TestMissingValuesSortFirstInBothDirections(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	rows := []score{
		{name: "b", value: intPtr(2)},
		{name: "none", value: nil},
		{name: "a", value: intPtr(1)},
	}
	columns := []Column[score]{{
		Key:    "value",
		Header: "Value",
		Value: func(s score) any {
			if s.value == nil {
				return nil
			}
			return *s.value
		},
	}}
	e := New(rows, columns, Options[score]{PageSize: 10})

	names := func() []string {
		var out []string
		for _, r := range e.SortedRows() {
			out = append(out, r.name)
		}
		return out
	}

	e.ToggleSort("value", false)
	if got, want := names(), []string{"none", "a", "b"}; !slices.Equal(got, want) {
		t.Fatalf("asc: expected %v, got %v", want, got)
	}
	e.ToggleSort("value", false)
	if got, want := names(), []string{"none", "b", "a"}; !slices.Equal(got, want) {
		t.Fatalf("desc: expected %v, got %v", want, got)
	}

	e.SetGlobalFilter("1")
	if got, want := names(), []string{"a"}; !slices.Equal(got, want) {
		t.Fatalf("expected missing values to not match filters, got %v", got)
	}
}
