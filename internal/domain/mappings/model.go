package mappings

import "sort"

// Row is one cross-system code correspondence. Field order is the wire
// key order of the mappings artifact; absent fields are omitted rather
// than written as null.
type Row struct {
	FromICD    string             `json:"from_icd,omitempty"`
	FromCode   *string            `json:"from_code,omitempty"`
	ToICD      string             `json:"to_icd,omitempty"`
	ToCode     *string            `json:"to_code,omitempty"`
	Attributes map[string]*string `json:"attributes,omitempty"`
	Source     string             `json:"source,omitempty"`
}

// SortRows stably orders rows by (from_icd, from_code, to_icd, to_code,
// source) ascending; attributes are not part of the sort key, and rows
// tying on all five keys keep their accumulation order. A null code
// orders before any value.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.FromICD != b.FromICD {
			return a.FromICD < b.FromICD
		}
		if c := comparePtr(a.FromCode, b.FromCode); c != 0 {
			return c < 0
		}
		if a.ToICD != b.ToICD {
			return a.ToICD < b.ToICD
		}
		if c := comparePtr(a.ToCode, b.ToCode); c != 0 {
			return c < 0
		}
		return a.Source < b.Source
	})
}

func comparePtr(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
