package table

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular dataset: an ordered set of named columns
// over string-or-null cells. Every row holds exactly one cell per column.
// Column names are unique and trimmed of surrounding whitespace at
// construction time.
type Table struct {
	Columns []string
	Rows    [][]*string
}

// New builds a Table from column names and row-major cells. Names are
// trimmed; rows shorter than the column set are padded with nulls, rows
// longer than it are a parse error.
func New(columns []string, rows [][]*string) (*Table, error) {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}

	out := make([][]*string, len(rows))
	for i, row := range rows {
		if len(row) > len(cols) {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected at most %d",
				ErrParse, i+1, len(row), len(cols))
		}
		padded := make([]*string, len(cols))
		copy(padded, row)
		out[i] = padded
	}

	return &Table{Columns: cols, Rows: out}, nil
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of the named column in row order.
func (t *Table) Column(name string) ([]*string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q (available columns: %v)", ErrColumnNotFound, name, t.Columns)
	}
	cells := make([]*string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[idx]
	}
	return cells, nil
}

// Rename changes a column's name in place.
func (t *Table) Rename(old, new string) error {
	idx := t.ColumnIndex(old)
	if idx < 0 {
		return fmt.Errorf("%w: %q (available columns: %v)", ErrColumnNotFound, old, t.Columns)
	}
	t.Columns[idx] = new
	return nil
}

// Cell returns the value at (row, column index).
func (t *Table) Cell(row, col int) *string {
	return t.Rows[row][col]
}

// StrPtr returns a pointer to s. Helper for building cell values.
func StrPtr(s string) *string {
	return &s
}
