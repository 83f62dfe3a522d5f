package labels

// Row is one code/label pair produced by a label source.
type Row struct {
	Code  *string
	Label string
}

// Tree is the nested label artifact: coding system → code → language →
// label. Later inserts for the same (system, code, language) triple
// overwrite earlier ones.
type Tree map[string]map[string]map[string]string

// Insert sets the label at [icd][code][lang], creating intermediate
// levels as needed and overwriting any existing leaf.
func (t Tree) Insert(icd, code, lang, label string) {
	byCode, ok := t[icd]
	if !ok {
		byCode = make(map[string]map[string]string)
		t[icd] = byCode
	}
	byLang, ok := byCode[code]
	if !ok {
		byLang = make(map[string]string)
		byCode[code] = byLang
	}
	byLang[lang] = label
}

// NumLabels returns the total number of leaves in the tree.
func (t Tree) NumLabels() int {
	n := 0
	for _, byCode := range t {
		for _, byLang := range byCode {
			n += len(byLang)
		}
	}
	return n
}

// nullKey is the tree key under which rows with a null code are filed,
// matching the JSON rendering of a null object key.
const nullKey = "null"

// CodeKey returns the tree key for a normalized code.
func CodeKey(code *string) string {
	if code == nil {
		return nullKey
	}
	return *code
}
