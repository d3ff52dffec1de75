package core

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune so
// downstream parsing never chokes on a bad export encoding. Valid input is
// returned unchanged without copying.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// allowedExtension reports whether name carries one of the allowed
// extensions. Matching is case-insensitive; allowed entries include the dot.
func allowedExtension(name string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// isCSV reports whether the file name has a .csv extension.
func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
