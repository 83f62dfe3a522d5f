package table

import (
	"errors"
	"testing"
)

func threeColumnTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New([]string{"alpha", "beta", "gamma"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tbl
}

func TestResolve_ByPosition(t *testing.T) {
	tbl := threeColumnTable(t)
	for i, want := range []string{"alpha", "beta", "gamma"} {
		got, err := Resolve(tbl, ByPosition(i))
		if err != nil {
			t.Fatalf("Resolve(%d): unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("Resolve(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestResolve_IndexOutOfRange(t *testing.T) {
	tbl := threeColumnTable(t)
	for _, i := range []int{-1, 3, 99} {
		_, err := Resolve(tbl, ByPosition(i))
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Resolve(%d): got %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestResolve_ByName(t *testing.T) {
	tbl := threeColumnTable(t)

	got, err := Resolve(tbl, ByName("beta"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "beta" {
		t.Errorf("got %q, want beta", got)
	}

	// Names are trimmed before matching.
	got, err = Resolve(tbl, ByName(" beta "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "beta" {
		t.Errorf("got %q, want beta", got)
	}
}

func TestResolve_NameNotFound(t *testing.T) {
	tbl := threeColumnTable(t)
	_, err := Resolve(tbl, ByName("delta"))
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("got %v, want ErrColumnNotFound", err)
	}
}

func TestResolve_CaseSensitive(t *testing.T) {
	tbl := threeColumnTable(t)
	_, err := Resolve(tbl, ByName("Beta"))
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("got %v, want ErrColumnNotFound for case mismatch", err)
	}
}

func TestResolve_InvalidSelector(t *testing.T) {
	tbl := threeColumnTable(t)

	_, err := Resolve(tbl, Selector{})
	if !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("zero selector: got %v, want ErrInvalidSelector", err)
	}

	_, err = Resolve(tbl, ByName(""))
	if !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("empty name: got %v, want ErrInvalidSelector", err)
	}

	_, err = Resolve(tbl, ByName("   "))
	if !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("blank name: got %v, want ErrInvalidSelector", err)
	}
}

func TestNew_TrimsColumnNames(t *testing.T) {
	tbl, err := New([]string{" code ", "label\t"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Columns[0] != "code" || tbl.Columns[1] != "label" {
		t.Errorf("columns not trimmed: %v", tbl.Columns)
	}
}

func TestNew_PadsShortRows(t *testing.T) {
	tbl, err := New([]string{"a", "b", "c"}, [][]*string{{StrPtr("1")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := tbl.Rows[0]
	if len(row) != 3 || row[1] != nil || row[2] != nil {
		t.Errorf("short row not padded with nulls: %v", row)
	}
}

func TestNew_RejectsWideRows(t *testing.T) {
	_, err := New([]string{"a"}, [][]*string{{StrPtr("1"), StrPtr("2")}})
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}
