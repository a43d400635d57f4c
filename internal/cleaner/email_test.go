package cleaner

import (
	"reflect"
	"testing"
)

func TestExtractEmails(t *testing.T) {
	tests := []struct {
		name string
		cell Value
		want []string
	}{
		{
			name: "display name and second address",
			cell: Text("Jane Doe <jane@x.com>, john@y.org"),
			want: []string{"jane@x.com", "john@y.org"},
		},
		{
			name: "single bare address",
			cell: Text("a@b.com"),
			want: []string{"a@b.com"},
		},
		{
			name: "case folded",
			cell: Text("Jane.DOE@Example.COM"),
			want: []string{"jane.doe@example.com"},
		},
		{
			name: "duplicates within cell removed, order kept",
			cell: Text("a@b.com; A@B.COM; c@d.net"),
			want: []string{"a@b.com", "c@d.net"},
		},
		{
			name: "fragment without domain ignored",
			cell: Text("bad@"),
			want: nil,
		},
		{
			name: "no address in prose",
			cell: Text("call after 5pm"),
			want: nil,
		},
		{
			name: "empty cell",
			cell: Text(""),
			want: nil,
		},
		{
			name: "missing cell",
			cell: Missing,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEmails(tt.cell)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEmails(%+v) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last+tag@sub.example.co", true},
		{"  a@b.com  ", true}, // trimmed before checking
		{"a..b@c.com", false}, // consecutive dots
		{".a@b.com", false},   // leading dot
		{"a.@b.com", false},   // local ends with dot
		{"a@b", false},        // no dot in domain
		{"a@b.c", false},      // final label too short
		{"a@-b.com", false},   // label starts with hyphen
		{"a@b-.com", false},   // label ends with hyphen
		{"a@b..com", false},   // empty label
		{"-a@b.com", false},   // local starts with hyphen
		{"a-@b.com", false},   // local ends with hyphen
		{"not an email", false},
		{"jane@x.com extra", false}, // embedded match is not a full match
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidEmail(tt.email); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
