// This file defines the pooled row used across parser -> transform -> writer
// to reduce heap churn while streaming block after block through a pipeline.
package table

import "sync"

// Contract:
//   - The owner writes into r[0:n] only (no re-slice growth).
//   - After the row has been written out or loaded, the consumer must call
//     FreeRow to return it to the pool.
//   - Do not retain references to a row beyond the owning stage.
//
// Rows are plain []any so they can feed pgx CopyFromRows directly.

var rowPool sync.Pool

// GetRow returns a pooled row with length n. All elements are zeroed so stale
// cells from a prior use can never leak into a new block.
func GetRow(n int) []any {
	if v := rowPool.Get(); v != nil {
		r := *(v.(*[]any))
		if cap(r) < n {
			r = make([]any, n)
		}
		r = r[:n]
		for i := range r {
			r[i] = nil
		}
		return r
	}
	return make([]any, n)
}

// FreeRow returns the row to the pool. The caller must not use r after.
func FreeRow(r []any) {
	rowPool.Put(&r)
}
