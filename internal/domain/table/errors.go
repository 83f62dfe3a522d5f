package table

import "errors"

// Sentinel errors for table loading and column resolution. Callers match
// with errors.Is; the wrapped message carries the offending source, the
// selector, and the available columns.
var (
	// ErrSourceNotFound indicates the source path or URL is unreachable.
	ErrSourceNotFound = errors.New("source not found")

	// ErrParse indicates malformed delimited or spreadsheet content.
	ErrParse = errors.New("parse error")

	// ErrInvalidSelector indicates a nil or empty column selector.
	ErrInvalidSelector = errors.New("invalid column selector")

	// ErrColumnNotFound indicates a named selector matched no column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrIndexOutOfRange indicates a positional selector outside the table.
	ErrIndexOutOfRange = errors.New("column index out of range")
)
