package core

import (
	"bytes"
	"testing"
)

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{
			name:  "valid input unchanged",
			input: []byte("Employee_ID,Salary\nE001,50000"),
			want:  []byte("Employee_ID,Salary\nE001,50000"),
		},
		{
			name:  "valid multibyte unchanged",
			input: []byte("Müller,Ørsted,日本"),
			want:  []byte("Müller,Ørsted,日本"),
		},
		{
			name:  "invalid byte replaced",
			input: []byte{'a', 0xff, 'b'},
			want:  []byte("a�b"),
		},
		{
			name:  "truncated sequence replaced",
			input: []byte{'x', 0xc3},
			want:  []byte("x�"),
		},
		{
			name:  "empty input",
			input: []byte{},
			want:  []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeUTF8(tt.input)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("sanitizeUTF8(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeUTF8NoCopyWhenValid(t *testing.T) {
	input := []byte("already valid")
	got := sanitizeUTF8(input)
	if &got[0] != &input[0] {
		t.Error("valid input should be returned without copying")
	}
}

func TestAllowedExtension(t *testing.T) {
	allowed := []string{".xlsx", ".xlsm", ".csv"}

	tests := []struct {
		name string
		file string
		want bool
	}{
		{"xlsx", "report.xlsx", true},
		{"csv", "data.csv", true},
		{"uppercase extension", "DATA.CSV", true},
		{"macro workbook", "book.xlsm", true},
		{"text file", "notes.txt", false},
		{"no extension", "Makefile", false},
		{"extension only suffix", "archive.csv.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := allowedExtension(tt.file, allowed); got != tt.want {
				t.Errorf("allowedExtension(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestIsCSV(t *testing.T) {
	if !isCSV("data.csv") || !isCSV("DATA.CSV") {
		t.Error("expected .csv files to be recognized")
	}
	if isCSV("book.xlsx") {
		t.Error("xlsx is not CSV")
	}
}
