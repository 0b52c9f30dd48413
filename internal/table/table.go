// Package table defines the positional block model shared by every pipeline:
// an ordered column list plus rows of cells aligned to it. Readers produce
// blocks, transforms reshape them, writers and storage sinks consume them.
//
// Cell kinds are deliberately narrow: string, float64, json.Number, bool and
// nil (null). Pipelines that only move text around hold string cells so values
// pass through byte-identical.
package table

// Block is a bounded run of rows sharing one ordered column list.
//
// Invariant: len(row) == len(Columns) for every row. Readers enforce this by
// padding short rows with nil cells.
type Block struct {
	Columns []string
	Rows    [][]any
}

// Index returns the position of the named column, or -1 when absent.
func (b *Block) Index(name string) int {
	for i, c := range b.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Project builds a new block with columns cols, where idx[i] is the source
// column position feeding cols[i]. An idx of -1 yields nil cells for that
// column. Rows come from the pool; the caller owns them and should release
// the block with FreeRows once it has been written out.
//
// idx follows the dest->source convention used by the CSV streaming path, so
// drop, subset and rename are all the same operation with different inputs.
func (b *Block) Project(cols []string, idx []int) *Block {
	out := &Block{Columns: cols, Rows: make([][]any, 0, len(b.Rows))}
	for _, row := range b.Rows {
		dst := GetRow(len(cols))
		for i, six := range idx {
			if six >= 0 && six < len(row) {
				dst[i] = row[six]
			}
		}
		out.Rows = append(out.Rows, dst)
	}
	return out
}

// FreeRows returns every row of the block to the pool and truncates Rows.
// The block's columns stay valid; the rows must no longer be referenced.
func FreeRows(b *Block) {
	for _, r := range b.Rows {
		FreeRow(r)
	}
	b.Rows = b.Rows[:0]
}
