// Package codes canonicalizes raw clinical code strings (ICD-9, ICD-10
// and similar alphanumeric coding systems).
package codes

import "strings"

var separators = strings.NewReplacer(".", "", ",", "")

// Normalize canonicalizes a raw code: surrounding whitespace is trimmed,
// '.' and ',' separators are removed, and letters are uppercased. Nil or
// blank input yields nil. Normalize is total and idempotent.
func Normalize(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	c = strings.ToUpper(separators.Replace(c))
	return &c
}
