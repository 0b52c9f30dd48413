package table

import (
	"reflect"
	"testing"
)

/*
TestIndex verifies column lookup by name, including the -1 miss case and the
first-match rule for (invalid but tolerated) duplicate headers.
*/
func TestIndex(t *testing.T) {
	t.Parallel()

	b := &Block{Columns: []string{"a", "b", "c", "b"}}
	if got := b.Index("a"); got != 0 {
		t.Fatalf("Index(a)=%d; want 0", got)
	}
	if got := b.Index("b"); got != 1 {
		t.Fatalf("Index(b)=%d; want 1 (first match)", got)
	}
	if got := b.Index("zzz"); got != -1 {
		t.Fatalf("Index(zzz)=%d; want -1", got)
	}
}

/*
TestProject_SubsetAndReorder verifies that Project selects, reorders and
renames in one pass: output columns come from cols, cell values from the idx
mapping, independent of the source column order.
*/
func TestProject_SubsetAndReorder(t *testing.T) {
	t.Parallel()

	src := &Block{
		Columns: []string{"Q47", "Q49", "Q48"},
		Rows: [][]any{
			{"3", "7", "1"},
			{"4", "8", "2"},
		},
	}

	out := src.Project([]string{"LifeSat", "SHealth"}, []int{1, 0})
	wantCols := []string{"LifeSat", "SHealth"}
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Fatalf("columns=%#v; want %#v", out.Columns, wantCols)
	}
	wantRows := [][]any{{"7", "3"}, {"8", "4"}}
	if !reflect.DeepEqual(out.Rows, wantRows) {
		t.Fatalf("rows=%#v; want %#v", out.Rows, wantRows)
	}
}

/*
TestProject_MissingSource verifies the -1 convention: a dest column with no
source position reads nil for every row, and a source index beyond a short
row also reads nil rather than panicking.
*/
func TestProject_MissingSource(t *testing.T) {
	t.Parallel()

	src := &Block{
		Columns: []string{"a"},
		Rows:    [][]any{{"x"}},
	}
	out := src.Project([]string{"a", "ghost"}, []int{0, -1})
	if got := out.Rows[0][0]; got != "x" {
		t.Fatalf("cell[0]=%v; want x", got)
	}
	if got := out.Rows[0][1]; got != nil {
		t.Fatalf("cell[1]=%v; want nil", got)
	}

	out2 := src.Project([]string{"far"}, []int{5})
	if got := out2.Rows[0][0]; got != nil {
		t.Fatalf("out-of-range source cell=%v; want nil", got)
	}
}

/*
TestFreeRows verifies rows are recycled and the block is left empty but
usable: Rows truncated to zero length, Columns untouched.
*/
func TestFreeRows(t *testing.T) {
	b := &Block{Columns: []string{"a"}, Rows: [][]any{GetRow(1), GetRow(1)}}
	FreeRows(b)
	if len(b.Rows) != 0 {
		t.Fatalf("len(Rows)=%d after FreeRows; want 0", len(b.Rows))
	}
	if len(b.Columns) != 1 {
		t.Fatalf("columns clobbered: %#v", b.Columns)
	}
}
