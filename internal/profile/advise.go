package profile

import "strings"

// Advise derives a short usage hint for a column. The column name is
// lower-cased and tested against the rule table in order; the first matching
// rule wins. When no rule matches, the inferred type picks a fallback note.
// Advise never fails: an unmatched name is the fallback branch, not an error.
func (p *Profiler) Advise(columnName string, typ TypeClass) string {
	name := strings.ToLower(columnName)

	for _, rule := range p.Rules {
		for _, pat := range rule.Patterns {
			if pat != "" && strings.Contains(name, strings.ToLower(pat)) {
				return rule.Note
			}
		}
	}

	switch typ {
	case TypeCurrency:
		return "Use for financial calculations"
	case TypeDate:
		return "Use for date calculations and filtering"
	case TypeNumber, TypePercentage:
		return "Use to calculate or analyze"
	case TypeEmpty:
		return "Empty column, consider removing"
	default:
		return "Use to categorize or filter"
	}
}
