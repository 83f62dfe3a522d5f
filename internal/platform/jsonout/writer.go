// Package jsonout renders the label and mapping artifacts. The byte
// layout is a compatibility contract with downstream consumers: labels
// are fully pretty-printed, while the mappings artifact keeps "sources"
// pretty and renders each mapping row on exactly one line so diffs of
// large generated files stay reviewable.
package jsonout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ehr/codecompass/internal/domain/labels"
	"github.com/ehr/codecompass/internal/domain/mappings"
)

// WriteLabels writes the labels artifact: {"sources": ..., "labels": ...}
// pretty-printed with two-space indentation. Non-ASCII characters are
// written verbatim, not escaped.
func WriteLabels(w io.Writer, sources any, tree labels.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	doc := struct {
		Sources any         `json:"sources"`
		Labels  labels.Tree `json:"labels"`
	}{Sources: sources, Labels: tree}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing labels artifact: %w", err)
	}
	return nil
}

// WriteMappings writes the mappings artifact. "sources" is pretty-printed
// and indented; "mappings" is an array with one row per line in the fixed
// key order from_icd, from_code, to_icd, to_code, attributes, source,
// absent fields omitted. Rows are stably sorted by (from_icd, from_code,
// to_icd, to_code, source) before emission, so rows tying on all five
// keys keep their accumulation order.
func WriteMappings(w io.Writer, sources any, rows []mappings.Row) error {
	sorted := make([]mappings.Row, len(rows))
	copy(sorted, rows)
	mappings.SortRows(sorted)

	if _, err := io.WriteString(w, "{\n  \"sources\": "); err != nil {
		return err
	}

	src, err := marshalShifted(sources)
	if err != nil {
		return fmt.Errorf("writing sources: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return err
	}

	if _, err := io.WriteString(w, ",\n  \"mappings\": [\n"); err != nil {
		return err
	}
	for i, row := range sorted {
		line, err := marshalCompact(row)
		if err != nil {
			return fmt.Errorf("writing mapping row %d: %w", i, err)
		}
		suffix := "\n"
		if i < len(sorted)-1 {
			suffix = ",\n"
		}
		if _, err := io.WriteString(w, "    "+string(line)+suffix); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "  ]\n}\n"); err != nil {
		return err
	}
	return nil
}

// marshalShifted pretty-prints v with every line after the first shifted
// two extra spaces, so a nested value aligns under its top-level key.
func marshalShifted(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalCompact renders v as single-line JSON with non-ASCII verbatim.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
