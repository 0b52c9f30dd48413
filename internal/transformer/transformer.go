// Package transformer reworks flattened blocks into their typed output
// shape: selected columns are coerced to float64 in place and mixed-unit
// compound columns are split into two appended float columns.
//
// Column lookups happen once per block, never per row. Malformed cells
// are never fatal and never silent: they become nil and land in the
// report, one tally per source column.
package transformer

import (
	"fmt"
	"sort"
	"strings"

	"dataprep/internal/config"
	"dataprep/internal/parser/floats"
	"dataprep/internal/table"
)

type coercePlan struct {
	idx   int
	tally *floats.Tally
}

type splitPlan struct {
	idx   int
	tally *floats.Tally
}

// Report aggregates malformed cells seen during Apply.
type Report struct {
	tallies []*floats.Tally
}

// Malformed reports the total number of cells set to nil because their
// value could not be parsed.
func (r *Report) Malformed() int {
	total := 0
	for _, t := range r.tallies {
		total += t.Malformed()
	}
	return total
}

// Summaries returns one line per column that saw malformed values, in
// plan order. A clean run returns nothing.
func (r *Report) Summaries() []string {
	var out []string
	for _, t := range r.tallies {
		if s := t.Summary(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Apply reworks b in place according to spec. Float columns are coerced
// with empty cells kept as nil; each split appends its left and right
// column, in declaration order, while the compound source column stays.
// The caller must own b: both its rows and its column slice are modified.
//
// Every coercion or split source absent from b.Columns is collected into
// a single error so one run names them all.
func Apply(b *table.Block, spec config.FlattenSpec) (*Report, error) {
	sep := spec.Separator
	if sep == "" {
		sep = "/"
	}

	var missing []string
	rep := &Report{}

	coerces := make([]coercePlan, 0, len(spec.FloatFields))
	for _, f := range spec.FloatFields {
		ix := b.Index(f)
		if ix < 0 {
			missing = append(missing, f)
			continue
		}
		t := floats.NewTally(f, spec.SampleLimit)
		rep.tallies = append(rep.tallies, t)
		coerces = append(coerces, coercePlan{idx: ix, tally: t})
	}

	splits := make([]splitPlan, 0, len(spec.Splits))
	for _, sp := range spec.Splits {
		ix := b.Index(sp.Source)
		if ix < 0 {
			missing = append(missing, sp.Source)
			continue
		}
		t := floats.NewTally(sp.Source, spec.SampleLimit)
		rep.tallies = append(rep.tallies, t)
		splits = append(splits, splitPlan{idx: ix, tally: t})
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing columns in flattened records: %s", strings.Join(missing, ", "))
	}

	for _, sp := range spec.Splits {
		b.Columns = append(b.Columns, sp.Left, sp.Right)
	}

	for i, row := range b.Rows {
		n := i + 1

		for _, c := range coerces {
			f, ok, err := floats.Parse(row[c.idx])
			switch {
			case err != nil:
				c.tally.Note(n, err)
				row[c.idx] = nil
			case ok:
				row[c.idx] = f
			default:
				c.tally.NoteNull()
				row[c.idx] = nil
			}
		}

		for _, s := range splits {
			lv, rv, ok, err := floats.SplitPair(row[s.idx], sep)
			switch {
			case err != nil:
				s.tally.Note(n, err)
				row = append(row, nil, nil)
			case ok:
				row = append(row, lv, rv)
			default:
				s.tally.NoteNull()
				row = append(row, nil, nil)
			}
		}

		b.Rows[i] = row
	}

	return rep, nil
}
