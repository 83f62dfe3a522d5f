package table

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is a single regex substitution: every non-overlapping match of
// Pattern in a cell is replaced with Replace. Replace may reference
// capture groups as `\1` or `$1`.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// CompiledRule is a Rule with its pattern compiled and its replacement
// text translated to the engine's group-reference syntax.
type CompiledRule struct {
	re      *regexp.Regexp
	replace string
}

// CompileRules compiles an ordered rule list. Rule order is preserved:
// during application, rule i+1 sees the output of rule i.
func CompileRules(rules []Rule) ([]CompiledRule, error) {
	out := make([]CompiledRule, 0, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("replacement rule %d: invalid pattern %q: %w", i, r.Pattern, err)
		}
		out = append(out, CompiledRule{re: re, replace: translateReplacement(r.Replace)})
	}
	return out, nil
}

// Substitute applies the rules in order to one column of t, mutating the
// column in place; the rest of the table is unchanged. The column
// existence check is unconditional: a missing column fails even when the
// rule list is empty.
func Substitute(t *Table, column string, rules []CompiledRule) error {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return fmt.Errorf("%w: %q (available columns: %v)", ErrColumnNotFound, column, t.Columns)
	}

	if len(rules) == 0 {
		return nil
	}

	for _, rule := range rules {
		for _, row := range t.Rows {
			if row[idx] == nil {
				continue
			}
			replaced := rule.re.ReplaceAllString(*row[idx], rule.replace)
			row[idx] = &replaced
		}
	}
	return nil
}

// translateReplacement converts backslash-style group references (`\1`)
// to this engine's `${1}` form. Replacement text that already uses `$`
// references is left untouched; otherwise literal `$` is escaped so it
// survives expansion.
func translateReplacement(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			if c == '$' {
				b.WriteString("$$")
			} else {
				b.WriteByte(c)
			}
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte('\\')
			break
		}
		next := s[i+1]
		switch {
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			b.WriteString("${" + s[i+1:j] + "}")
			i = j - 1
		case next == '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(next)
			i++
		}
	}
	return b.String()
}
