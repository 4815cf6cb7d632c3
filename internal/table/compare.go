package table

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Stringify renders a raw column value as filter and export text. Missing
// values become the empty string and times use their calendar date.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.DateOnly)
	case *time.Time:
		if v == nil {
			return ""
		}
		return Stringify(*v)
	case fmt.Stringer:
		if isNilPointer(value) {
			return ""
		}
		return v.String()
	default:
		if isNilPointer(value) {
			return ""
		}
		return fmt.Sprint(v)
	}
}

// Compare orders two raw column values. Missing values sort first, numbers
// compare numerically, times chronologically, booleans false before true and
// anything else as case-insensitive text.
func Compare(a, b any) int {
	aMissing, bMissing := isMissing(a), isMissing(b)
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return -1
	case bMissing:
		return 1
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(strings.ToLower(Stringify(a)), strings.ToLower(Stringify(b)))
}

func isMissing(value any) bool {
	if value == nil {
		return true
	}
	if t, ok := value.(time.Time); ok {
		return t.IsZero()
	}
	return isNilPointer(value)
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// numeric reports the float value of any integer or float kind, including
// named types such as money amounts.
func numeric(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
