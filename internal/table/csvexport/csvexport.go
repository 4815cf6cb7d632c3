// Package csvexport serializes table rows to RFC 4180 CSV.
//
// The encoder performs no I/O of its own beyond the writer it is handed;
// saving or downloading the payload is the caller's concern.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/adpulse/internal/table"
)

// ContentType is the media type of the encoded payload.
const ContentType = "text/csv; charset=utf-8"

// Write encodes a header line of column labels followed by one line per
// row, in the order given. The selection column is skipped and missing
// values become empty fields.
func Write[T any](w io.Writer, rows []T, columns []table.Column[T]) error {
	cols := exportable(columns)
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = table.Stringify(col.RawValue(row))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Encode returns the CSV payload as a string.
func Encode[T any](rows []T, columns []table.Column[T]) string {
	var b strings.Builder
	// strings.Builder never fails a write.
	_ = Write(&b, rows, columns)
	return b.String()
}

// Filename names an export file after prefix and the local date of now, as
// in "campaign-data-2025-08-01.csv".
func Filename(prefix string, now time.Time) string {
	return prefix + "-" + now.Format(time.DateOnly) + ".csv"
}

func exportable[T any](columns []table.Column[T]) []table.Column[T] {
	out := make([]table.Column[T], 0, len(columns))
	for _, col := range columns {
		if col.Synthetic() {
			continue
		}
		out = append(out, col)
	}
	return out
}
