package cleaner

import "strings"

// Output columns added by explosion. Derived rows never retain the raw
// per-slot columns; these two replace them.
const (
	ColEmail = "Email"
	ColFlags = "Flags"
)

// Explode turns each source row into one derived row per extracted
// email per contact slot, pairing every email with that slot's flags
// text (trimmed and lowercased). A slot with no extractable email still
// emits one row with a missing Email, so every source row contributes
// at least one derived row and the output is never smaller than the
// input.
//
// With no detected slots the table passes through unchanged, except
// that Email and Flags columns are guaranteed to exist so downstream
// stages see a stable schema. In both cases the per-slot source columns
// are dropped from the result.
func Explode(t *Table, slots []int) *Table {
	sc := findSlotColumns(t.Columns)

	drop := make(map[string]bool, 2*len(slots))
	for _, i := range slots {
		if c, ok := sc.email[i]; ok {
			drop[c] = true
		}
		if c, ok := sc.flags[i]; ok {
			drop[c] = true
		}
	}

	columns := make([]string, 0, len(t.Columns)+2)
	for _, c := range t.Columns {
		if !drop[c] {
			columns = append(columns, c)
		}
	}
	if !containsColumn(columns, ColEmail) {
		columns = append(columns, ColEmail)
	}
	if !containsColumn(columns, ColFlags) {
		columns = append(columns, ColFlags)
	}

	out := &Table{Columns: columns}

	if len(slots) == 0 {
		for _, row := range t.Rows {
			out.Rows = append(out.Rows, copyRowDropping(row, drop))
		}
		return out
	}

	for _, row := range t.Rows {
		emitted := false
		for _, i := range slots {
			var emailCell, flagsCell Value
			if c, ok := sc.email[i]; ok {
				emailCell = row[c]
			}
			if c, ok := sc.flags[i]; ok {
				flagsCell = row[c]
			}

			flags := normalizeFlags(flagsCell)
			emails := ExtractEmails(emailCell)

			if len(emails) == 0 {
				// Emit anyway; dropping email-less rows is a later,
				// optional stage.
				nr := copyRowDropping(row, drop)
				nr[ColFlags] = flags
				out.Rows = append(out.Rows, nr)
				emitted = true
				continue
			}
			for _, e := range emails {
				nr := copyRowDropping(row, drop)
				nr[ColEmail] = Text(e)
				nr[ColFlags] = flags
				out.Rows = append(out.Rows, nr)
				emitted = true
			}
		}

		// Unreachable while the zero-candidate branch above emits, but
		// the row-count invariant is worth guarding outright.
		if !emitted {
			out.Rows = append(out.Rows, copyRowDropping(row, drop))
		}
	}

	return out
}

// normalizeFlags lowercases and trims a flags cell, preserving
// missingness.
func normalizeFlags(v Value) Value {
	if !v.Valid {
		return Missing
	}
	return Text(strings.ToLower(strings.TrimSpace(v.String)))
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
