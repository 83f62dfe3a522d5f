// Package labels builds the multilingual label tree for clinical coding
// systems from configured tabular sources.
package labels

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

// Service runs the labels pipeline over a spec document.
type Service struct {
	spec   *config.Spec
	reader Reader
	log    zerolog.Logger
}

// NewService creates a labels pipeline service.
func NewService(spec *config.Spec, reader Reader, log zerolog.Logger) *Service {
	return &Service{spec: spec, reader: reader, log: log}
}

// Build processes every configured label entry in order and merges the
// resulting rows into one label tree. Later entries win on collisions.
// Any per-source failure aborts the whole run.
func (s *Service) Build() (Tree, error) {
	if err := s.spec.ValidateLabels(); err != nil {
		return nil, err
	}

	tree := make(Tree)
	for i, entry := range s.spec.Labels {
		rows, err := s.readEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("labels[%d] (source %q): %w", i, entry.Source, err)
		}
		for _, row := range rows {
			tree.Insert(entry.ICD, CodeKey(row.Code), entry.Lang, row.Label)
		}
		s.log.Info().
			Str("source", entry.Source).
			Str("icd", entry.ICD).
			Str("lang", entry.Lang).
			Int("rows", len(rows)).
			Msg("label source processed")
	}
	return tree, nil
}

// readEntry loads one label source and projects it to code/label rows:
// resolve both selectors, rename to the canonical columns, normalize the
// codes, apply the optional anchored code filter and substitution rules,
// and drop rows without a label.
func (s *Service) readEntry(entry config.LabelEntry) ([]Row, error) {
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
		NoHeader:  entry.CodeColumn.IsPositional() || entry.LabelColumn.IsPositional(),
		Delimiter: entry.Delimiter,
		Sheet:     entry.Sheet,
		Encoding:  entry.Encoding,
	})
	if err != nil {
		return nil, err
	}

	codeCol, err := table.Resolve(t, entry.CodeColumn)
	if err != nil {
		return nil, err
	}
	labelCol, err := table.Resolve(t, entry.LabelColumn)
	if err != nil {
		return nil, err
	}
	if err := t.Rename(codeCol, "code"); err != nil {
		return nil, err
	}
	if err := t.Rename(labelCol, "label"); err != nil {
		return nil, err
	}

	codeIdx := t.ColumnIndex("code")
	labelIdx := t.ColumnIndex("label")

	for _, row := range t.Rows {
		row[codeIdx] = codes.Normalize(row[codeIdx])
	}

	if filter != nil {
		// A null code never matches; rows without a code are only kept
		// when no filter is configured.
		kept := t.Rows[:0]
		for _, row := range t.Rows {
			if row[codeIdx] != nil && filter.MatchString(*row[codeIdx]) {
				kept = append(kept, row)
			}
		}
		t.Rows = kept
	}

	// The column check runs even with an empty rule list.
	if err := table.Substitute(t, "code", rules); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, t.NumRows())
	for _, row := range t.Rows {
		if row[labelIdx] == nil {
			continue
		}
		rows = append(rows, Row{Code: row[codeIdx], Label: *row[labelIdx]})
	}
	return rows, nil
}
