// Package config loads the two configuration surfaces of the tool: the
// declarative YAML pipeline spec (sources, label and mapping entries) and
// the environment-driven runtime settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ehr/codecompass/internal/domain/table"
)

// ErrConfig indicates an invalid pipeline spec: a missing required key,
// an unknown source id, or a malformed entry.
var ErrConfig = errors.New("invalid configuration")

// Source is a configured origin table. Beyond the required "path" key its
// content is free-form and passes through verbatim into the output
// artifact under "sources".
type Source map[string]any

// Path returns the source's file path or URL.
func (s Source) Path() (string, error) {
	v, ok := s["path"]
	if !ok {
		return "", fmt.Errorf("%w: source has no \"path\" key", ErrConfig)
	}
	p, ok := v.(string)
	if !ok || p == "" {
		return "", fmt.Errorf("%w: source \"path\" must be a non-empty string", ErrConfig)
	}
	return p, nil
}

// LabelEntry configures one (source, coding system, language) label read.
type LabelEntry struct {
	Source       string         `yaml:"source"`
	ICD          string         `yaml:"icd"`
	Lang         string         `yaml:"lang"`
	CodeColumn   table.Selector `yaml:"code_column"`
	LabelColumn  table.Selector `yaml:"label_column"`
	Delimiter    string         `yaml:"delimiter"`
	Sheet        table.SheetRef `yaml:"sheet"`
	Encoding     string         `yaml:"encoding"`
	Filter       string         `yaml:"filter"`
	Replacements []table.Rule   `yaml:"replacements"`
}

// MappingEntry configures one cross-system mapping read.
type MappingEntry struct {
	Source       string         `yaml:"source"`
	FromICD      string         `yaml:"from_icd"`
	ToICD        string         `yaml:"to_icd"`
	FromColumn   table.Selector `yaml:"from_column"`
	ToColumn     table.Selector `yaml:"to_column"`
	Header       []string       `yaml:"header"`
	Attributes   []string       `yaml:"attributes"`
	Delimiter    string         `yaml:"delimiter"`
	Sheet        table.SheetRef `yaml:"sheet"`
	Encoding     string         `yaml:"encoding"`
	Filter       string         `yaml:"filter"`
	Replacements []table.Rule   `yaml:"replacements"`
}

// Spec is the declarative pipeline document driving a run.
type Spec struct {
	Sources  map[string]Source `yaml:"sources"`
	Labels   []LabelEntry      `yaml:"labels"`
	Mappings []MappingEntry    `yaml:"mappings"`
}

// LoadSpec parses the pipeline spec document at path.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %v", ErrConfig, path, err)
	}
	return spec, nil
}

// ResolveSource looks up a source id referenced by an entry and returns
// its path.
func (s *Spec) ResolveSource(id string) (Source, string, error) {
	src, ok := s.Sources[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: unknown source %q", ErrConfig, id)
	}
	path, err := src.Path()
	if err != nil {
		return nil, "", fmt.Errorf("source %q: %w", id, err)
	}
	return src, path, nil
}

// ValidateLabels checks every label entry for required keys and resolvable
// source references.
func (s *Spec) ValidateLabels() error {
	if len(s.Labels) == 0 {
		return fmt.Errorf("%w: no \"labels\" entries", ErrConfig)
	}
	for i, l := range s.Labels {
		if l.Source == "" || l.ICD == "" || l.Lang == "" {
			return fmt.Errorf("%w: labels[%d]: \"source\", \"icd\" and \"lang\" are required", ErrConfig, i)
		}
		if _, _, err := s.ResolveSource(l.Source); err != nil {
			return fmt.Errorf("labels[%d]: %w", i, err)
		}
		if l.CodeColumn.IsZero() || l.LabelColumn.IsZero() {
			return fmt.Errorf("%w: labels[%d]: \"code_column\" and \"label_column\" are required", ErrConfig, i)
		}
	}
	return nil
}

// ValidateMappings checks every mapping entry for required keys and
// resolvable source references.
func (s *Spec) ValidateMappings() error {
	if len(s.Mappings) == 0 {
		return fmt.Errorf("%w: no \"mappings\" entries", ErrConfig)
	}
	for i, m := range s.Mappings {
		if m.Source == "" || m.FromICD == "" || m.ToICD == "" {
			return fmt.Errorf("%w: mappings[%d]: \"source\", \"from_icd\" and \"to_icd\" are required", ErrConfig, i)
		}
		if _, _, err := s.ResolveSource(m.Source); err != nil {
			return fmt.Errorf("mappings[%d]: %w", i, err)
		}
		if m.FromColumn.IsZero() || m.ToColumn.IsZero() {
			return fmt.Errorf("%w: mappings[%d]: \"from_column\" and \"to_column\" are required", ErrConfig, i)
		}
	}
	return nil
}
