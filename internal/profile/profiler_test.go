package profile

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func textColumn(name string, values ...string) *Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = EmptyCell()
		} else {
			cells[i] = TextCell(v)
		}
	}
	return &Column{Name: name, Cells: cells}
}

// ----------------------------------------------------------------------------
// ClassifyType Tests
// ----------------------------------------------------------------------------

func TestClassifyType(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		col  *Column
		want TypeClass
	}{
		{
			name: "nil column",
			col:  nil,
			want: TypeEmpty,
		},
		{
			name: "zero rows",
			col:  &Column{Name: "Anything", Format: "$#,##0.00"},
			want: TypeEmpty,
		},
		{
			name: "all empty",
			col:  textColumn("Notes", "", "", ""),
			want: TypeEmpty,
		},
		{
			name: "all null literals",
			col:  textColumn("Notes", "null", "NULL", "Null"),
			want: TypeEmpty,
		},
		{
			name: "declared currency format wins over text values",
			col: &Column{
				Name:   "Price",
				Format: "$#,##0.00",
				Cells:  []Cell{TextCell("n/a"), TextCell("n/a")},
			},
			want: TypeCurrency,
		},
		{
			name: "declared percentage format",
			col: &Column{
				Name:   "Margin",
				Format: "0.00%",
				Cells:  []Cell{NumberCell(0.2)},
			},
			want: TypePercentage,
		},
		{
			name: "general format falls through to values",
			col: &Column{
				Name:   "Qty",
				Format: "General",
				Cells:  []Cell{NumberCell(1), NumberCell(2)},
			},
			want: TypeNumber,
		},
		{
			name: "first non-empty cell is formula",
			col: &Column{
				Name:  "Total",
				Cells: []Cell{EmptyCell(), FormulaCell("SUM(A1:A9)"), NumberCell(45)},
			},
			want: TypeFormula,
		},
		{
			name: "formula after a value does not decide",
			col: &Column{
				Name:  "Total",
				Cells: []Cell{NumberCell(1), FormulaCell("SUM(A1:A9)"), NumberCell(2)},
			},
			want: TypeNumber,
		},
		{
			name: "numeric majority",
			col:  textColumn("Amount", "100", "200", "abc"),
			want: TypeNumber,
		},
		{
			name: "numeric with currency symbols and separators",
			col:  textColumn("Amount", "$1,234.56", "$99.00", "$5.10"),
			want: TypeNumber,
		},
		{
			name: "date majority",
			col:  textColumn("Start", "2024-01-02", "2024-02-03", "soon"),
			want: TypeDate,
		},
		{
			name: "typed date cells",
			col: &Column{
				Name:  "Start",
				Cells: []Cell{DateCell(day), DateCell(day), TextCell("x")},
			},
			want: TypeDate,
		},
		{
			name: "no strict majority falls back to text",
			col:  textColumn("Mixed", "100", "2024-01-02", "abc", "def"),
			want: TypeText,
		},
		{
			name: "exactly half is not a majority",
			col:  textColumn("Mixed", "1", "2", "a", "b"),
			want: TypeText,
		},
		{
			name: "vote window ignores values past the first ten",
			col: textColumn("Late",
				"a", "b", "c", "d", "e", "f", "g", "h", "i", "j",
				"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"),
			want: TypeText,
		},
		{
			name: "booleans are not numbers",
			col: &Column{
				Name:  "Active",
				Cells: []Cell{BoolCell(true), BoolCell(false), BoolCell(true)},
			},
			want: TypeText,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ClassifyType(tt.col); got != tt.want {
				t.Errorf("ClassifyType() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ComputeQuality Tests
// ----------------------------------------------------------------------------

func TestComputeQuality(t *testing.T) {
	tests := []struct {
		name     string
		col      *Column
		wantFlag QualityFlag
		wantPct  int
	}{
		{
			name:     "nil column",
			col:      nil,
			wantFlag: QualityError,
			wantPct:  100,
		},
		{
			name:     "zero rows",
			col:      &Column{Name: "X"},
			wantFlag: QualityError,
			wantPct:  100,
		},
		{
			name:     "all values present",
			col:      textColumn("X", "a", "b", "c"),
			wantFlag: QualityClean,
			wantPct:  0,
		},
		{
			name:     "all empty",
			col:      textColumn("X", "", "", ""),
			wantFlag: QualityError,
			wantPct:  100,
		},
		{
			name:     "two of five empty",
			col:      textColumn("X", "1", "", "", "", "5"),
			wantFlag: QualityError,
			wantPct:  60,
		},
		{
			name:     "two of five empty is a warning",
			col:      textColumn("X", "1", "", "", "4", "5"),
			wantFlag: QualityWarning,
			wantPct:  40,
		},
		{
			name:     "null literal counts as missing",
			col:      textColumn("X", "a", "NULL", "b", "c"),
			wantFlag: QualityWarning,
			wantPct:  25,
		},
		{
			name:     "half empty grades error",
			col:      textColumn("X", "a", "", "b", ""),
			wantFlag: QualityError,
			wantPct:  50,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ComputeQuality(tt.col)
			if got.Flag != tt.wantFlag || got.EmptyPercent != tt.wantPct {
				t.Errorf("ComputeQuality() = %v/%d%%, want %v/%d%%",
					got.Flag, got.EmptyPercent, tt.wantFlag, tt.wantPct)
			}
		})
	}
}

func TestComputeQualityWindowBound(t *testing.T) {
	// 100 present values followed by 50 empties: the window stops at 100,
	// so the trailing empties must not affect the grade.
	cells := make([]Cell, 0, 150)
	for i := 0; i < 100; i++ {
		cells = append(cells, NumberCell(float64(i)))
	}
	for i := 0; i < 50; i++ {
		cells = append(cells, EmptyCell())
	}

	got := New().ComputeQuality(&Column{Name: "Tall", Cells: cells})
	if got.Flag != QualityClean {
		t.Errorf("ComputeQuality() = %v, want %v", got.Flag, QualityClean)
	}
}

// ----------------------------------------------------------------------------
// SampleValues Tests
// ----------------------------------------------------------------------------

func TestSampleValues(t *testing.T) {
	tests := []struct {
		name string
		col  *Column
		want []string
	}{
		{
			name: "nil column",
			col:  nil,
			want: []string{"(empty/null)"},
		},
		{
			name: "all empty",
			col:  textColumn("X", "", "", ""),
			want: []string{"(empty/null)"},
		},
		{
			name: "null literals are skipped",
			col:  textColumn("X", "null", "NULL", "real"),
			want: []string{"real"},
		},
		{
			name: "numbers stringify without exponent",
			col: &Column{
				Name:  "X",
				Cells: []Cell{NumberCell(100), NumberCell(200), NumberCell(300)},
			},
			want: []string{"100", "200"},
		},
		{
			name: "empties are skipped in row order",
			col:  textColumn("X", "", "first", "", "second", "third"),
			want: []string{"first", "second"},
		},
		{
			name: "dates render as ISO days",
			col: &Column{
				Name:  "X",
				Cells: []Cell{DateCell(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))},
			},
			want: []string{"2024-06-15"},
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.SampleValues(tt.col)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SampleValues() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleValuesTruncation(t *testing.T) {
	long := strings.Repeat("ab", 15) // 30 characters
	got := New().SampleValues(textColumn("X", long))

	if len(got) != 1 {
		t.Fatalf("expected one sample, got %d", len(got))
	}
	want := long[:22] + "..."
	if got[0] != want {
		t.Errorf("sample = %q, want %q", got[0], want)
	}
	if len([]rune(got[0])) > DefaultMaxSampleLen {
		t.Errorf("sample length %d exceeds %d", len([]rune(got[0])), DefaultMaxSampleLen)
	}
}

func TestSampleValuesNeverExceedsMax(t *testing.T) {
	col := textColumn("X", "a", "b", "c", "d", "e")
	got := New().SampleValues(col)
	if len(got) > DefaultMaxSamples {
		t.Errorf("got %d samples, want at most %d", len(got), DefaultMaxSamples)
	}
}

// ----------------------------------------------------------------------------
// Advise Tests
// ----------------------------------------------------------------------------

func TestAdvise(t *testing.T) {
	tests := []struct {
		name       string
		columnName string
		typ        TypeClass
		want       string
	}{
		{
			name:       "id substring",
			columnName: "Employee_ID",
			typ:        TypeText,
			want:       "Use for lookups/joins",
		},
		{
			name:       "date substring beats type fallback",
			columnName: "HireDate",
			typ:        TypeText,
			want:       "Use for date calculations and filtering",
		},
		{
			name:       "amount substring",
			columnName: "order_amount",
			typ:        TypeNumber,
			want:       "Use for financial calculations",
		},
		{
			name:       "status substring",
			columnName: "Ticket Status",
			typ:        TypeText,
			want:       "Use to filter by category",
		},
		{
			name:       "currency fallback",
			columnName: "xyz",
			typ:        TypeCurrency,
			want:       "Use for financial calculations",
		},
		{
			name:       "date fallback",
			columnName: "xyz",
			typ:        TypeDate,
			want:       "Use for date calculations and filtering",
		},
		{
			name:       "number fallback",
			columnName: "xyz",
			typ:        TypeNumber,
			want:       "Use to calculate or analyze",
		},
		{
			name:       "empty fallback",
			columnName: "xyz",
			typ:        TypeEmpty,
			want:       "Empty column, consider removing",
		},
		{
			name:       "text fallback",
			columnName: "xyz",
			typ:        TypeText,
			want:       "Use to categorize or filter",
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Advise(tt.columnName, tt.typ); got != tt.want {
				t.Errorf("Advise(%q, %v) = %q, want %q", tt.columnName, tt.typ, got, tt.want)
			}
		})
	}
}

func TestAdviseRulePriority(t *testing.T) {
	// "order_id_date" contains both "id" and "date"; the id rule is listed
	// first and must win.
	got := New().Advise("order_id_date", TypeText)
	if got != "Use for lookups/joins" {
		t.Errorf("Advise() = %q, want id rule to win", got)
	}
}

// ----------------------------------------------------------------------------
// Profile Tests
// ----------------------------------------------------------------------------

func TestProfileNilColumn(t *testing.T) {
	if _, err := New().Profile(nil); err != ErrNilColumn {
		t.Errorf("Profile(nil) error = %v, want ErrNilColumn", err)
	}
}

func TestProfileScenarios(t *testing.T) {
	p := New()

	t.Run("all empty column", func(t *testing.T) {
		got, err := p.Profile(textColumn("Spare", "", "", ""))
		if err != nil {
			t.Fatalf("Profile() error = %v", err)
		}
		if got.Type != TypeEmpty {
			t.Errorf("type = %v, want %v", got.Type, TypeEmpty)
		}
		if got.Quality.Flag != QualityError || got.Quality.EmptyPercent != 100 {
			t.Errorf("quality = %+v, want Error/100", got.Quality)
		}
		if !reflect.DeepEqual(got.Samples, []string{"(empty/null)"}) {
			t.Errorf("samples = %v", got.Samples)
		}
	})

	t.Run("numeric column", func(t *testing.T) {
		col := &Column{
			Name:  "Score",
			Cells: []Cell{NumberCell(100), NumberCell(200), NumberCell(300)},
		}
		got, err := p.Profile(col)
		if err != nil {
			t.Fatalf("Profile() error = %v", err)
		}
		if got.Type != TypeNumber {
			t.Errorf("type = %v, want %v", got.Type, TypeNumber)
		}
		if got.Quality.Flag != QualityClean {
			t.Errorf("quality = %+v, want Clean", got.Quality)
		}
		if !reflect.DeepEqual(got.Samples, []string{"100", "200"}) {
			t.Errorf("samples = %v", got.Samples)
		}
	})

	t.Run("id column advice", func(t *testing.T) {
		got, err := p.Profile(textColumn("Employee_ID", "E001", "E002"))
		if err != nil {
			t.Fatalf("Profile() error = %v", err)
		}
		if got.Advice != "Use for lookups/joins" {
			t.Errorf("advice = %q", got.Advice)
		}
	})
}

func TestProfileIdempotent(t *testing.T) {
	col := textColumn("Employee_ID", "E001", "", "null", "E004")
	p := New()

	first, err := p.Profile(col)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	second, err := p.Profile(col)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Profile() differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
