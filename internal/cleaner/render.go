package cleaner

import (
	"encoding/csv"
	"fmt"
	"io"
)

// DefaultFilename is the suggested download name for cleaned exports.
const DefaultFilename = "dealmachine_cleaned_emails.csv"

// WriteCSV serializes the table as UTF-8 CSV: header row first, one
// line per row, standard quoting for cells containing the delimiter,
// quotes, or newlines. Missing cells render as empty fields.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			v := row[col]
			if v.Valid {
				rec[i] = v.String
			} else {
				rec[i] = ""
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
