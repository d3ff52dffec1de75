package profile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// AdviceRule maps column-name substrings to a usage note. Rules are data,
// not control flow: the profiler walks the slice in order and the first rule
// whose pattern appears in the lower-cased column name wins.
type AdviceRule struct {
	Patterns []string `toml:"patterns"`
	Note     string   `toml:"note"`
}

// DefaultRules returns the built-in advisory vocabulary in priority order.
func DefaultRules() []AdviceRule {
	return []AdviceRule{
		{Patterns: []string{"id"}, Note: "Use for lookups/joins"},
		{Patterns: []string{"key", "code"}, Note: "Use for lookups/joins"},
		{Patterns: []string{"date", "time"}, Note: "Use for date calculations and filtering"},
		{Patterns: []string{"amount", "total", "sum"}, Note: "Use for financial calculations"},
		{Patterns: []string{"count", "number", "qty"}, Note: "Use to calculate or aggregate"},
		{Patterns: []string{"status", "state", "flag"}, Note: "Use to filter by category"},
		{Patterns: []string{"name", "title", "description"}, Note: "Display field"},
		{Patterns: []string{"email", "phone", "address"}, Note: "Contact information"},
		{Patterns: []string{"percent", "rate"}, Note: "Use for rate calculations"},
	}
}

type rulesFile struct {
	Rules []AdviceRule `toml:"rule"`
}

// LoadRules reads an advisory rule table from a TOML file:
//
//	[[rule]]
//	patterns = ["id"]
//	note = "Use for lookups/joins"
//
// Rule order in the file is priority order. An empty file yields no rules,
// which leaves only the type-based fallback notes.
func LoadRules(path string) ([]AdviceRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var rf rulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}

	for i, r := range rf.Rules {
		if len(r.Patterns) == 0 {
			return nil, fmt.Errorf("rule %d in %s has no patterns", i+1, path)
		}
		if r.Note == "" {
			return nil, fmt.Errorf("rule %d in %s has no note", i+1, path)
		}
	}

	return rf.Rules, nil
}
