package profile

import (
	"strconv"
	"strings"
	"time"
)

var (
	dateLayouts = []string{
		"2006-01-02",
		"01-02-2006",
		"01/02/2006",
		"01/02/06",
		"1/2/06",
		"2 Jan 2006",
		"Jan 2, 2006",
	}

	dateTimeLayouts = []string{
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05Z07:00",
	}

	// currencySymbols are stripped before numeric probing so values like
	// "$1,234.56" vote as numbers.
	currencySymbols = "$€£¥¤"
)

// ParseDate attempts to interpret s as a calendar date or timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}
	for _, layout := range dateTimeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}

	return time.Time{}, false
}

// ParseNumber attempts to interpret s as a number, tolerating currency
// symbols, thousands separators, and a trailing percent sign.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimFunc(s, func(r rune) bool {
		return strings.ContainsRune(currencySymbols, r)
	})
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if percent {
		f /= 100
	}
	return f, true
}

// ParseBool attempts to interpret s as a boolean.
func ParseBool(s string) (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false
	}
	return b, true
}

// isNullToken reports whether s is the literal text "null" after trimming,
// matched case-insensitively. Quality scans count these as missing values.
func isNullToken(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "null")
}
