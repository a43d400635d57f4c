// Package cleaner implements the DealMachine contact-export cleaning
// pipeline: encoding-tolerant CSV ingestion, contact-slot detection,
// per-contact row explosion, email validation, flag-based row filtering
// and deduplication.
//
// The package has no UI, network, or storage dependencies and can be
// driven by any frontend. A run is a pure function of the uploaded
// bytes plus an Options value; each stage produces a new table.
package cleaner

import "strings"

// Value is a cell value that may be missing. A missing cell is distinct
// from a present-but-empty string: missing means the source column was
// absent or the cell was never populated by a stage.
type Value struct {
	String string
	Valid  bool
}

// Missing is the zero Value, representing an absent cell.
var Missing = Value{}

// Text wraps a string as a present cell value.
func Text(s string) Value {
	return Value{String: s, Valid: true}
}

// Row maps column names to cell values. Columns absent from the map
// read as Missing.
type Row map[string]Value

// Table is an ordered-column collection of rows. Columns controls
// serialization order; rows may omit entries for missing cells.
type Table struct {
	Columns []string
	Rows    []Row
}

// Trim returns a copy of the table with leading and trailing whitespace
// stripped from every present cell. Missing cells are untouched.
func Trim(t *Table) *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		nr := make(Row, len(row))
		for col, v := range row {
			if v.Valid {
				v.String = strings.TrimSpace(v.String)
			}
			nr[col] = v
		}
		out.Rows[i] = nr
	}
	return out
}

// copyRowDropping copies a row, omitting the given columns.
func copyRowDropping(row Row, drop map[string]bool) Row {
	nr := make(Row, len(row)+2)
	for col, v := range row {
		if drop[col] {
			continue
		}
		nr[col] = v
	}
	return nr
}

// filterRows returns a new table containing only the rows that keep
// reports true for. Row order is preserved; rows are shared, not
// copied, since stages never mutate rows in place.
func filterRows(t *Table, keep func(Row) bool) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
