package cleaner

// ingest.go decodes raw upload bytes into a Table.
//
// DealMachine exports arrive in a handful of encodings depending on how
// the user re-saved the file: plain UTF-8, UTF-8 with a Windows BOM, or
// a single-byte legacy encoding. Candidates are tried in that order and
// the first one whose output parses as CSV wins. Latin-1 decodes every
// possible byte, so the only way all candidates fail is malformed CSV
// structure.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnreadableFile is returned when no candidate encoding produced a
// parseable CSV. It is the only fatal error a run can produce; callers
// should surface it and halt.
var ErrUnreadableFile = errors.New("unreadable file: not a parseable CSV in any supported encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type encodingCandidate struct {
	name   string
	decode func([]byte) ([]byte, error)
}

var encodingCandidates = []encodingCandidate{
	{"utf-8", decodeUTF8},
	{"utf-8-sig", decodeUTF8SIG},
	{"latin-1", decodeLatin1},
}

func decodeUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		// Leave BOM handling to the utf-8-sig candidate so the marker
		// never leaks into the first column name.
		return nil, errors.New("byte-order mark present")
	}
	if !utf8.Valid(data) {
		return nil, errors.New("invalid UTF-8")
	}
	return data, nil
}

func decodeUTF8SIG(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errors.New("invalid UTF-8")
	}
	return data, nil
}

func decodeLatin1(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode latin-1: %w", err)
	}
	return out, nil
}

// Ingest decodes raw file bytes into a table, trying UTF-8, BOM-prefixed
// UTF-8, and Latin-1 in order. The first record becomes the header; rows
// shorter than the header read as missing cells in the trailing columns,
// and cells beyond the header are discarded.
//
// Returns ErrUnreadableFile when every candidate fails, including the
// empty-input case (no header row to work with).
func Ingest(data []byte) (*Table, error) {
	for _, c := range encodingCandidates {
		text, err := c.decode(data)
		if err != nil {
			continue
		}
		t, err := parseTable(text)
		if err != nil {
			continue
		}
		return t, nil
	}
	return nil, ErrUnreadableFile
}

func parseTable(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	// Exports routinely have ragged rows; quoting stays strict so that
	// structurally broken files are rejected rather than misparsed.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}

	columns := append([]string(nil), records[0]...)
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = Text(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}
