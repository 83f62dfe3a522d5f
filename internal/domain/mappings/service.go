// Package mappings builds the cross-system code mapping collection from
// configured tabular sources.
package mappings

import (
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/ehr/codecompass/internal/config"
	"github.com/ehr/codecompass/internal/domain/codes"
	"github.com/ehr/codecompass/internal/domain/table"
)

// Reader loads a configured source into a Table.
type Reader interface {
	Read(path string, opts table.ReadOptions) (*table.Table, error)
}

// Service runs the mappings pipeline over a spec document.
type Service struct {
	spec   *config.Spec
	reader Reader
	log    zerolog.Logger
}

// NewService creates a mappings pipeline service.
func NewService(spec *config.Spec, reader Reader, log zerolog.Logger) *Service {
	return &Service{spec: spec, reader: reader, log: log}
}

// Build processes every configured mapping entry in order and appends the
// resulting rows to one flat collection. Nothing is merged: duplicate
// correspondences across sources are preserved verbatim. Any per-source
// failure aborts the whole run.
func (s *Service) Build() ([]Row, error) {
	if err := s.spec.ValidateMappings(); err != nil {
		return nil, err
	}

	var all []Row
	for i, entry := range s.spec.Mappings {
		rows, err := s.readEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("mappings[%d] (source %q): %w", i, entry.Source, err)
		}
		all = append(all, rows...)
		s.log.Info().
			Str("source", entry.Source).
			Str("from_icd", entry.FromICD).
			Str("to_icd", entry.ToICD).
			Int("rows", len(rows)).
			Msg("mapping source processed")
	}
	return all, nil
}

// readEntry loads one mapping source and projects it to mapping rows:
// resolve and rename the two code columns, normalize both codes, apply
// the optional anchored filter and substitution rules to the from side,
// copy the configured attribute columns by their original names, and tag
// every row with its source and coding systems.
func (s *Service) readEntry(entry config.MappingEntry) ([]Row, error) {
	_, path, err := s.spec.ResolveSource(entry.Source)
	if err != nil {
		return nil, err
	}

	rules, err := table.CompileRules(entry.Replacements)
	if err != nil {
		return nil, err
	}

	var filter *regexp.Regexp
	if entry.Filter != "" {
		filter, err = regexp.Compile("^(?:" + entry.Filter + ")")
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", entry.Filter, err)
		}
	}

	t, err := s.reader.Read(path, table.ReadOptions{
		Header:    entry.Header,
		NoHeader:  entry.FromColumn.IsPositional() || entry.ToColumn.IsPositional(),
		Delimiter: entry.Delimiter,
		Sheet:     entry.Sheet,
		Encoding:  entry.Encoding,
	})
	if err != nil {
		return nil, err
	}

	fromCol, err := table.Resolve(t, entry.FromColumn)
	if err != nil {
		return nil, err
	}
	toCol, err := table.Resolve(t, entry.ToColumn)
	if err != nil {
		return nil, err
	}
	if err := t.Rename(fromCol, "from_code"); err != nil {
		return nil, err
	}
	if err := t.Rename(toCol, "to_code"); err != nil {
		return nil, err
	}

	fromIdx := t.ColumnIndex("from_code")
	toIdx := t.ColumnIndex("to_code")

	// Attribute columns are matched by their original names against the
	// renamed table; values stay raw.
	attrIdx := make(map[string]int, len(entry.Attributes))
	for _, a := range entry.Attributes {
		name, err := table.Resolve(t, table.ByName(a))
		if err != nil {
			return nil, err
		}
		attrIdx[a] = t.ColumnIndex(name)
	}

	for _, row := range t.Rows {
		row[fromIdx] = codes.Normalize(row[fromIdx])
		row[toIdx] = codes.Normalize(row[toIdx])
	}

	if filter != nil {
		kept := t.Rows[:0]
		for _, row := range t.Rows {
			if row[fromIdx] != nil && filter.MatchString(*row[fromIdx]) {
				kept = append(kept, row)
			}
		}
		t.Rows = kept
	}

	// The column check runs even with an empty rule list.
	if err := table.Substitute(t, "from_code", rules); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, t.NumRows())
	for _, row := range t.Rows {
		attrs := make(map[string]*string, len(entry.Attributes))
		for _, a := range entry.Attributes {
			attrs[a] = row[attrIdx[a]]
		}
		rows = append(rows, Row{
			FromICD:    entry.FromICD,
			FromCode:   row[fromIdx],
			ToICD:      entry.ToICD,
			ToCode:     row[toIdx],
			Attributes: attrs,
			Source:     entry.Source,
		})
	}
	return rows, nil
}
