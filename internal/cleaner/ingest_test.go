package cleaner

import (
	"errors"
	"testing"
)

func TestIngestEncodings(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		wantCols []string
		wantCell string // value of first column, first row
	}{
		{
			name:     "plain utf-8",
			input:    []byte("name,contact_1_email\nJane,jane@x.com\n"),
			wantCols: []string{"name", "contact_1_email"},
			wantCell: "Jane",
		},
		{
			name:     "utf-8 multibyte",
			input:    []byte("name\ncaf\xc3\xa9\n"),
			wantCols: []string{"name"},
			wantCell: "café",
		},
		{
			name:     "utf-8 with BOM",
			input:    []byte("\xEF\xBB\xBFname\nJane\n"),
			wantCols: []string{"name"},
			wantCell: "Jane",
		},
		{
			name:     "latin-1 high byte",
			input:    []byte("name\ncaf\xe9\n"),
			wantCols: []string{"name"},
			wantCell: "café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := Ingest(tt.input)
			if err != nil {
				t.Fatalf("Ingest() error = %v", err)
			}
			if len(tab.Columns) != len(tt.wantCols) {
				t.Fatalf("columns = %v, want %v", tab.Columns, tt.wantCols)
			}
			for i, c := range tt.wantCols {
				if tab.Columns[i] != c {
					t.Errorf("column %d = %q, want %q", i, tab.Columns[i], c)
				}
			}
			if len(tab.Rows) == 0 {
				t.Fatal("no rows parsed")
			}
			got := tab.Rows[0][tab.Columns[0]]
			if !got.Valid || got.String != tt.wantCell {
				t.Errorf("first cell = %+v, want %q", got, tt.wantCell)
			}
		})
	}
}

func TestIngestUnreadable(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty input", []byte{}},
		{"header only quote error", []byte(`a,"b"x,c` + "\n")},
		{"broken quoting mid file", []byte("a,b\n\"one\"two,3\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Ingest(tt.input)
			if !errors.Is(err, ErrUnreadableFile) {
				t.Errorf("Ingest() error = %v, want ErrUnreadableFile", err)
			}
		})
	}
}

func TestIngestRaggedRows(t *testing.T) {
	tab, err := Ingest([]byte("a,b,c\n1,2\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tab.Rows))
	}

	// Short row: trailing column missing.
	if v := tab.Rows[0]["c"]; v.Valid {
		t.Errorf("short row column c = %+v, want missing", v)
	}
	// Long row: extra cell discarded, header columns kept.
	if v := tab.Rows[1]["c"]; !v.Valid || v.String != "3" {
		t.Errorf("long row column c = %+v, want 3", v)
	}
}

func TestTrim(t *testing.T) {
	tab := &Table{
		Columns: []string{"a", "b"},
		Rows: []Row{
			{"a": Text("  spaced  "), "b": Text("kept")},
			{"a": Text("\tx\n")},
		},
	}

	got := Trim(tab)

	if v := got.Rows[0]["a"]; v.String != "spaced" {
		t.Errorf("trimmed cell = %q, want %q", v.String, "spaced")
	}
	if v := got.Rows[1]["a"]; v.String != "x" {
		t.Errorf("trimmed cell = %q, want %q", v.String, "x")
	}
	if v := got.Rows[1]["b"]; v.Valid {
		t.Errorf("missing cell became present: %+v", v)
	}
	// Source table untouched.
	if v := tab.Rows[0]["a"]; v.String != "  spaced  " {
		t.Errorf("Trim mutated its input: %q", v.String)
	}
}
