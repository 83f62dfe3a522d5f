package table

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selector identifies a column either by zero-based position or by name.
// The zero value is unset and fails resolution with ErrInvalidSelector.
type Selector struct {
	name    string
	index   int
	byIndex bool
	set     bool
}

// ByName returns a selector matching a column name.
func ByName(name string) Selector {
	return Selector{name: name, set: true}
}

// ByPosition returns a selector matching a zero-based column position.
func ByPosition(i int) Selector {
	return Selector{index: i, byIndex: true, set: true}
}

// IsPositional reports whether the selector addresses a column by index.
func (s Selector) IsPositional() bool {
	return s.set && s.byIndex
}

// IsZero reports whether the selector is unset.
func (s Selector) IsZero() bool {
	return !s.set
}

func (s Selector) String() string {
	if !s.set {
		return "<unset>"
	}
	if s.byIndex {
		return fmt.Sprintf("%d", s.index)
	}
	return fmt.Sprintf("%q", s.name)
}

// UnmarshalYAML accepts either an integer (position) or a string (name),
// so config entries can write `code_column: 3` or `code_column: Code`.
func (s *Selector) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		var i int
		if err := value.Decode(&i); err != nil {
			return err
		}
		*s = ByPosition(i)
		return nil
	}
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("column selector must be an integer or a string: %w", err)
	}
	*s = ByName(name)
	return nil
}

// Resolve maps a selector to a concrete column name on t. Resolution is
// total: it yields exactly one existing column or a descriptive error,
// never a silent default. Named selectors are trimmed before matching;
// the match itself is case-sensitive.
func Resolve(t *Table, sel Selector) (string, error) {
	if sel.IsZero() {
		return "", fmt.Errorf("%w: selector is empty (available columns: %v)",
			ErrInvalidSelector, t.Columns)
	}

	if sel.byIndex {
		if sel.index < 0 || sel.index >= len(t.Columns) {
			return "", fmt.Errorf("%w: index %d is out of range (0..%d, available columns: %v)",
				ErrIndexOutOfRange, sel.index, len(t.Columns)-1, t.Columns)
		}
		return t.Columns[sel.index], nil
	}

	name := strings.TrimSpace(sel.name)
	if name == "" {
		return "", fmt.Errorf("%w: selector is empty (available columns: %v)",
			ErrInvalidSelector, t.Columns)
	}
	if t.ColumnIndex(name) < 0 {
		return "", fmt.Errorf("%w: %q (available columns: %v)",
			ErrColumnNotFound, name, t.Columns)
	}
	return name, nil
}
