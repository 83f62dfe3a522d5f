package table

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// delimiterCandidates is the candidate set scored during auto-detection,
// in tie-break order.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// decodeCharset converts raw bytes in the named character set to UTF-8.
// The name is an IANA charset name ("latin-1", "windows-1252", ...);
// empty or "utf-8" passes the bytes through.
func decodeCharset(data []byte, name string) (string, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" || name == "utf-8" || name == "utf8" {
		return string(data), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: unknown encoding %q", ErrParse, name)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decoding %q content: %v", ErrParse, name, err)
	}
	return string(decoded), nil
}

// sniffDelimiter guesses the field separator by scoring candidate
// characters over a sample of up to ten non-empty lines. Best effort:
// the highest total count wins, ties break by candidate order, and no
// hits at all falls back to a comma.
func sniffDelimiter(text string) rune {
	lines := strings.Split(text, "\n")
	sample := 0
	counts := make(map[rune]int, len(delimiterCandidates))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, c := range delimiterCandidates {
			counts[c] += strings.Count(line, string(c))
		}
		sample++
		if sample >= 10 {
			break
		}
	}

	best := ','
	bestCount := 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

// parseDelimited splits decoded text into records of raw string fields.
// Fields may be quoted with double quotes; inside a quoted field a quote
// is escaped by doubling or by a backslash, and a backslash escapes an
// embedded delimiter or quote anywhere. Fully blank lines are skipped.
func parseDelimited(text string, delim rune) ([][]string, error) {
	var (
		records  [][]string
		record   []string
		field    strings.Builder
		inQuotes bool
		quoted   bool // current field started with an opening quote
	)

	runes := []rune(text)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
		quoted = false
	}
	endRecord := func() {
		endField()
		blank := true
		for _, f := range record {
			if f != "" {
				blank = false
				break
			}
		}
		// A single empty field means the line was blank.
		if !blank || len(record) > 1 {
			records = append(records, record)
		}
		record = nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) {
			field.WriteRune(runes[i+1])
			i++
			continue
		}

		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteRune(r)
			continue
		}

		switch {
		case r == '"' && field.Len() == 0 && !quoted:
			inQuotes = true
			quoted = true
		case r == delim:
			endField()
		case r == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRecord()
		case r == '\n':
			endRecord()
		default:
			field.WriteRune(r)
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quoted field", ErrParse)
	}
	if field.Len() > 0 || quoted || len(record) > 0 {
		endRecord()
	}

	return records, nil
}

// readDelimited loads delimited text content into a Table, applying
// charset decoding, delimiter sniffing and the header mode in opts.
func readDelimited(data []byte, opts ReadOptions) (*Table, error) {
	text, err := decodeCharset(data, opts.Encoding)
	if err != nil {
		return nil, err
	}

	delim := sniffDelimiter(text)
	if opts.Delimiter != "" {
		rs := []rune(opts.Delimiter)
		if len(rs) != 1 {
			return nil, fmt.Errorf("%w: delimiter must be a single character, got %q", ErrParse, opts.Delimiter)
		}
		delim = rs[0]
	}

	records, err := parseDelimited(text, delim)
	if err != nil {
		return nil, err
	}

	return assemble(records, opts)
}

// assemble applies the header mode to raw records and builds the Table.
// Empty fields become null cells; no numeric or date coercion happens.
func assemble(records [][]string, opts ReadOptions) (*Table, error) {
	var columns []string
	data := records

	switch {
	case len(opts.Header) > 0:
		columns = opts.Header
	case opts.NoHeader:
		width := 0
		for _, rec := range records {
			if len(rec) > width {
				width = len(rec)
			}
		}
		columns = positionalNames(width)
	default:
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: no header row", ErrParse)
		}
		columns = records[0]
		data = records[1:]
	}

	rows := make([][]*string, len(data))
	for i, rec := range data {
		row := make([]*string, len(rec))
		for j, f := range rec {
			if f == "" {
				continue
			}
			v := f
			row[j] = &v
		}
		rows[i] = row
	}

	return New(columns, rows)
}

// positionalNames names columns by zero-based position: "0", "1", ...
func positionalNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%d", i)
	}
	return names
}
