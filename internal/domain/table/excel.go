package table

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// SheetRef selects a worksheet by zero-based index or by name. The zero
// value selects the first sheet.
type SheetRef struct {
	name   string
	index  int
	byName bool
}

// SheetByIndex returns a reference to the sheet at a zero-based index.
func SheetByIndex(i int) SheetRef {
	return SheetRef{index: i}
}

// SheetByName returns a reference to a named sheet.
func SheetByName(name string) SheetRef {
	return SheetRef{name: name, byName: true}
}

// UnmarshalYAML accepts either an integer index or a sheet name.
func (s *SheetRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		var i int
		if err := value.Decode(&i); err != nil {
			return err
		}
		*s = SheetByIndex(i)
		return nil
	}
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("sheet must be an integer or a string: %w", err)
	}
	*s = SheetByName(name)
	return nil
}

// readExcel loads one worksheet of an Excel workbook into a Table. Cells
// are read as raw strings so codes like "010" keep their leading zeros.
// Delimiter and encoding options do not apply to spreadsheets.
func readExcel(data []byte, opts ReadOptions) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", ErrParse, err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrParse, sheet, err)
	}

	return assemble(records, opts)
}

func resolveSheet(f *excelize.File, ref SheetRef) (string, error) {
	sheets := f.GetSheetList()
	if ref.byName {
		for _, s := range sheets {
			if s == ref.name {
				return s, nil
			}
		}
		return "", fmt.Errorf("%w: sheet %q not found (available sheets: %v)", ErrParse, ref.name, sheets)
	}
	if ref.index < 0 || ref.index >= len(sheets) {
		return "", fmt.Errorf("%w: sheet index %d is out of range (0..%d)", ErrParse, ref.index, len(sheets)-1)
	}
	return sheets[ref.index], nil
}
