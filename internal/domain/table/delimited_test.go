package table

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDelimited_Basic(t *testing.T) {
	records, err := parseDelimited("a,b,c\n1,2,3\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("got %v, want %v", records, want)
	}
}

func TestParseDelimited_QuotedFields(t *testing.T) {
	records, err := parseDelimited("\"a,b\",c\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a,b", "c"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("got %v, want %v", records, want)
	}
}

func TestParseDelimited_BackslashEscape(t *testing.T) {
	// Backslash escapes an embedded delimiter, quoted or not.
	records, err := parseDelimited(`"a\,b",c\,d`, ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a,b", "c,d"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("got %v, want %v", records, want)
	}
}

func TestParseDelimited_DoubledQuote(t *testing.T) {
	records, err := parseDelimited("\"say \"\"hi\"\"\",x\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{`say "hi"`, "x"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("got %v, want %v", records, want)
	}
}

func TestParseDelimited_SkipsBlankLines(t *testing.T) {
	records, err := parseDelimited("a,b\n\n1,2\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2: %v", len(records), records)
	}
}

func TestParseDelimited_CRLF(t *testing.T) {
	records, err := parseDelimited("a;b\r\n1;2\r\n", ';')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("got %v, want %v", records, want)
	}
}

func TestParseDelimited_NoTrailingNewline(t *testing.T) {
	records, err := parseDelimited("a,b\n1,2", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2: %v", len(records), records)
	}
}

func TestParseDelimited_TrailingEmptyField(t *testing.T) {
	records, err := parseDelimited("a,\n", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", ""}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("got %v, want %v", records, want)
	}
}

func TestParseDelimited_UnterminatedQuote(t *testing.T) {
	_, err := parseDelimited("\"oops\n", ',')
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		text string
		want rune
	}{
		{"a;b;c\n1;2;3\n", ';'},
		{"a\tb\n1\t2\n", '\t'},
		{"a|b|c\n", '|'},
		{"a,b\n1,2\n", ','},
		{"single-column\nrows\n", ','},
	}
	for _, c := range cases {
		if got := sniffDelimiter(c.text); got != c.want {
			t.Errorf("sniffDelimiter(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestDecodeCharset_Latin1(t *testing.T) {
	// 0xE9 is "é" in ISO-8859-1.
	got, err := decodeCharset([]byte{'f', 'i', 0xE9, 'v', 'r', 'e'}, "iso-8859-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fiévre" {
		t.Errorf("got %q, want fiévre", got)
	}
}

func TestDecodeCharset_Unknown(t *testing.T) {
	_, err := decodeCharset([]byte("x"), "no-such-charset")
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestAssemble_HeaderModes(t *testing.T) {
	records := [][]string{{" code ", "label"}, {"A10", "Fever"}}

	// First row consumed as header, names trimmed.
	tbl, err := assemble(records, ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"code", "label"}) {
		t.Errorf("columns = %v", tbl.Columns)
	}
	if tbl.NumRows() != 1 {
		t.Errorf("rows = %d, want 1", tbl.NumRows())
	}

	// Positional mode: columns named by position, all rows are data.
	tbl, err = assemble(records, ReadOptions{NoHeader: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"0", "1"}) {
		t.Errorf("columns = %v", tbl.Columns)
	}
	if tbl.NumRows() != 2 {
		t.Errorf("rows = %d, want 2", tbl.NumRows())
	}

	// Explicit header list: first row is data.
	tbl, err = assemble(records, ReadOptions{Header: []string{"c", "l"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"c", "l"}) {
		t.Errorf("columns = %v", tbl.Columns)
	}
	if tbl.NumRows() != 2 {
		t.Errorf("rows = %d, want 2", tbl.NumRows())
	}
}

func TestAssemble_EmptyFieldsAreNull(t *testing.T) {
	tbl, err := assemble([][]string{{"a", "b"}, {"", "x"}}, ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Cell(0, 0) != nil {
		t.Error("empty field should load as null")
	}
	if tbl.Cell(0, 1) == nil || *tbl.Cell(0, 1) != "x" {
		t.Errorf("cell = %v, want x", tbl.Cell(0, 1))
	}
}
