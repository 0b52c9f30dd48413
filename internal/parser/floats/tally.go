package floats

import (
	"fmt"
	"sync"
)

// Tally aggregates malformed-cell reports for one field so a run can null the
// cells without losing sight of them: the first few offenders are kept
// verbatim with row numbers, everything else only bumps the counter.
type Tally struct {
	mu      sync.Mutex
	field   string
	limit   int
	count   int64
	nulls   int64
	samples []string
}

// NewTally returns a tally for field keeping at most limit sample messages.
// A limit <= 0 falls back to 5.
func NewTally(field string, limit int) *Tally {
	if limit <= 0 {
		limit = 5
	}
	return &Tally{field: field, limit: limit}
}

// Note records one malformed cell at row (1-based data row).
func (t *Tally) Note(row int, err error) {
	t.mu.Lock()
	if int(t.count) < t.limit {
		t.samples = append(t.samples, fmt.Sprintf("row %d: %v", row, err))
	}
	t.count++
	t.mu.Unlock()
}

// NoteNull records a cell that was absent/empty and became null normally.
func (t *Tally) NoteNull() {
	t.mu.Lock()
	t.nulls++
	t.mu.Unlock()
}

// Field returns the field name the tally watches.
func (t *Tally) Field() string { return t.field }

// Malformed returns how many malformed cells were recorded.
func (t *Tally) Malformed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Nulls returns how many cells were null for ordinary reasons.
func (t *Tally) Nulls() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nulls
}

// Summary renders a one-line report, or "" when no malformed cells were seen.
func (t *Tally) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return ""
	}
	s := fmt.Sprintf("field %s: %d malformed value(s) set to null", t.field, t.count)
	for _, smp := range t.samples {
		s += "; " + smp
	}
	if int64(len(t.samples)) < t.count {
		s += "; ..."
	}
	return s
}
