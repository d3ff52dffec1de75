package profile

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Default sample window bounds. The windows trade accuracy for speed on very
// tall columns; they are contracts of the profiler, not correctness limits.
const (
	DefaultTypeVoteWindow = 10
	DefaultQualityWindow  = 100
	DefaultMaxSamples     = 2
	DefaultMaxSampleLen   = 25
)

// truncationMarker is appended to sample values cut at MaxSampleLen.
const truncationMarker = "..."

// emptyPlaceholder is returned by SampleValues when no usable value exists.
const emptyPlaceholder = "(empty/null)"

// Profiler holds the tunable bounds and the advisory rule set.
// The zero value is not usable; construct with New.
// A Profiler is stateless between calls and safe for concurrent use.
type Profiler struct {
	TypeVoteWindow int
	QualityWindow  int
	MaxSamples     int
	MaxSampleLen   int
	Rules          []AdviceRule
}

// New returns a Profiler with the default windows and rule set.
func New() *Profiler {
	return &Profiler{
		TypeVoteWindow: DefaultTypeVoteWindow,
		QualityWindow:  DefaultQualityWindow,
		MaxSamples:     DefaultMaxSamples,
		MaxSampleLen:   DefaultMaxSampleLen,
		Rules:          DefaultRules(),
	}
}

// Profile runs all four profiling operations against one column snapshot.
// It returns ErrNilColumn for a nil column; for every other input it returns
// a complete, well-typed result. Per-value parse failures never surface as
// errors, they simply miss their vote.
func (p *Profiler) Profile(col *Column) (ColumnProfile, error) {
	if col == nil {
		return ColumnProfile{}, ErrNilColumn
	}

	typ := p.ClassifyType(col)
	return ColumnProfile{
		Name:    col.Name,
		Type:    typ,
		Quality: p.ComputeQuality(col),
		Samples: p.SampleValues(col),
		Advice:  p.Advise(col.Name, typ),
	}, nil
}

// ClassifyType infers the semantic type of a column.
//
// A declared currency or percentage format wins without inspecting values.
// Otherwise the first non-empty cell in the vote window decides Formula, and
// failing that a vote over the window applies in tie-break order: all empty
// wins Empty, a strict majority of dates wins Date, a strict majority of
// numbers wins Number, anything else is Text. A column with no cells is
// Empty regardless of its declared format.
func (p *Profiler) ClassifyType(col *Column) TypeClass {
	if col == nil || len(col.Cells) == 0 {
		return TypeEmpty
	}

	switch declaredClass(col.Format) {
	case TypeCurrency:
		return TypeCurrency
	case TypePercentage:
		return TypePercentage
	}

	window := col.Cells
	if len(window) > p.TypeVoteWindow {
		window = window[:p.TypeVoteWindow]
	}

	var empty, dates, numbers int
	seenValue := false

	for _, c := range window {
		if c.Kind == KindEmpty || (c.Kind == KindText && (strings.TrimSpace(c.Text) == "" || isNullToken(c.Text))) {
			empty++
			continue
		}

		// A formula marker on the first non-empty cell decides the column.
		if c.Kind == KindFormula && !seenValue {
			return TypeFormula
		}
		seenValue = true

		switch c.Kind {
		case KindDate:
			dates++
		case KindNumber:
			numbers++
		case KindText:
			if _, ok := ParseDate(c.Text); ok {
				dates++
			} else if _, ok := ParseNumber(c.Text); ok {
				numbers++
			}
		}
	}

	sampled := len(window)
	switch {
	case empty == sampled:
		return TypeEmpty
	case dates*2 > sampled:
		return TypeDate
	case numbers*2 > sampled:
		return TypeNumber
	default:
		return TypeText
	}
}

// ComputeQuality grades completeness over the quality window. Cells that are
// empty or hold the literal text "null" count as missing. A column with no
// cells grades Error at 100% rather than dividing by zero.
func (p *Profiler) ComputeQuality(col *Column) Quality {
	if col == nil || len(col.Cells) == 0 {
		return Quality{Flag: QualityError, EmptyPercent: 100}
	}

	window := col.Cells
	if len(window) > p.QualityWindow {
		window = window[:p.QualityWindow]
	}

	missing := 0
	for _, c := range window {
		if c.Kind == KindEmpty || (c.Kind == KindText && (strings.TrimSpace(c.Text) == "" || isNullToken(c.Text))) {
			missing++
		}
	}

	pct := int(math.Round(100 * float64(missing) / float64(len(window))))
	switch {
	case pct == 0:
		return Quality{Flag: QualityClean}
	case pct < 50:
		return Quality{Flag: QualityWarning, EmptyPercent: pct}
	default:
		return Quality{Flag: QualityError, EmptyPercent: pct}
	}
}

// SampleValues returns up to MaxSamples non-empty, non-"null" values from
// the column in row order, each truncated to MaxSampleLen characters with a
// marker when cut. When nothing qualifies it returns a single placeholder.
func (p *Profiler) SampleValues(col *Column) []string {
	if col == nil {
		return []string{emptyPlaceholder}
	}

	var out []string
	for _, c := range col.Cells {
		if len(out) >= p.MaxSamples {
			break
		}
		s := CellString(c)
		if strings.TrimSpace(s) == "" || isNullToken(s) {
			continue
		}
		out = append(out, truncate(s, p.MaxSampleLen))
	}

	if len(out) == 0 {
		return []string{emptyPlaceholder}
	}
	return out
}

// CellString renders a cell the way sample values and exports display it.
func CellString(c Cell) string {
	switch c.Kind {
	case KindEmpty:
		return ""
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindDate:
		return c.Date.Format("2006-01-02")
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindFormula:
		return "=" + strings.TrimPrefix(c.Text, "=")
	default:
		return c.Text
	}
}

// truncate cuts s so the result, marker included, never exceeds maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	keep := maxLen - len(truncationMarker)
	if keep < 1 {
		keep = 1
	}
	runes := []rune(s)
	return string(runes[:keep]) + truncationMarker
}

// declaredClass maps a declared number format to Currency or Percentage,
// or TypeUnknown when the format signals neither.
func declaredClass(format string) TypeClass {
	f := strings.TrimSpace(format)
	if f == "" || strings.EqualFold(f, "general") {
		return TypeUnknown
	}

	if strings.ContainsAny(f, currencySymbols) || strings.Contains(strings.ToLower(f), "currency") {
		return TypeCurrency
	}
	if strings.Contains(f, "%") {
		return TypePercentage
	}
	return TypeUnknown
}
