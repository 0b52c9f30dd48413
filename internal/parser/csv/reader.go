// Package csv reads large CSV files as a sequence of bounded row blocks.
// It avoids whole-file buffering; memory is proportional to the block size,
// not the input, so multi-gigabyte survey exports parse safely.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"dataprep/internal/config"
	"dataprep/internal/table"
)

// Options configures the reader. All fields are optional; sensible defaults
// are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing ASCII spaces from header and cell
	// values.
	TrimSpace bool

	// ChunkSize caps the number of rows per block. When <= 0,
	// config.DefaultChunkSize applies.
	ChunkSize int

	// LazyQuotes relaxes quote handling for inputs with stray quotes.
	LazyQuotes bool
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// logSkipLimit caps per-row skip logging so a badly damaged file cannot
// flood the log. Skipped rows beyond the cap are still counted.
const logSkipLimit = 400

// Reader parses CSV input into blocks of at most ChunkSize rows. The header
// line is consumed at construction time and column names are kept exactly as
// spelled in the file, aside from BOM and optional edge-space stripping, so
// that later matching by name sees the original spelling.
//
// Reader is not safe for concurrent use.
type Reader struct {
	cr      *csv.Reader
	opt     Options
	columns []string
	line    int
	skipped int
	ragged  int
	done    bool
}

// NewReader wraps r and reads the header line. An empty or unparseable
// header is a construction error, not a row error.
func NewReader(r io.Reader, opt Options) (*Reader, error) {
	if opt.Comma == 0 {
		opt.Comma = ','
	}
	if opt.ChunkSize <= 0 {
		opt.ChunkSize = config.DefaultChunkSize
	}

	cr := csv.NewReader(r)
	cr.Comma = opt.Comma
	cr.ReuseRecord = true
	cr.LazyQuotes = opt.LazyQuotes
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	// ReuseRecord aliases the reader's scratch slice; copy before keeping.
	cols := make([]string, len(hdr))
	copy(cols, hdr)
	StripHeaderBOM(cols)
	if opt.TrimSpace {
		for i, c := range cols {
			if hasEdgeSpace(c) {
				cols[i] = strings.TrimSpace(c)
			}
		}
	}

	return &Reader{cr: cr, opt: opt, columns: cols, line: 1}, nil
}

// Columns returns the header names in file order. The slice is shared with
// every block this reader produces; callers must not modify it.
func (r *Reader) Columns() []string { return r.columns }

// Next returns the next block of at most ChunkSize rows, or io.EOF once the
// input is drained. Row slices come from the shared row pool; callers release
// a finished block with table.FreeRows before requesting the next one.
//
// Cells are strings, except that empty cells become nil. Rows shorter than
// the header are padded with nil and rows wider than the header lose the
// excess cells; both are counted as ragged. Rows encoding/csv cannot parse
// at all are skipped and counted, never fatal.
func (r *Reader) Next(ctx context.Context) (*table.Block, error) {
	if r.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width := len(r.columns)
	block := &table.Block{
		Columns: r.columns,
		Rows:    make([][]any, 0, r.opt.ChunkSize),
	}

	for len(block.Rows) < r.opt.ChunkSize {
		rec, err := r.cr.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		r.line++
		if err != nil {
			if r.skipped < logSkipLimit {
				log.Printf("Skipping row %d: %v", r.line, err)
			}
			r.skipped++
			continue
		}
		if len(rec) != width {
			r.ragged++
		}

		n := len(rec)
		if n > width {
			n = width
		}
		row := table.GetRow(width)
		for i := 0; i < n; i++ {
			v := rec[i]
			if r.opt.TrimSpace && hasEdgeSpace(v) {
				v = strings.TrimSpace(v)
			}
			if v != "" {
				row[i] = v
			}
		}
		block.Rows = append(block.Rows, row)
	}

	if len(block.Rows) == 0 {
		return nil, io.EOF
	}
	return block, nil
}

// Skipped reports how many rows were dropped because they could not be
// parsed.
func (r *Reader) Skipped() int { return r.skipped }

// Ragged reports how many rows were kept after width repair.
func (r *Reader) Ragged() int { return r.ragged }

// StripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func StripHeaderBOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	if strings.HasPrefix(headers[0], utf8BOM) {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}
	return headers
}

// hasEdgeSpace reports whether s starts or ends with ASCII whitespace. It is
// a fast path that skips strings.TrimSpace for the common clean cell.
func hasEdgeSpace(s string) bool {
	n := len(s)
	if n == 0 {
		return false
	}
	b0, b1 := s[0], s[n-1]
	return b0 == ' ' || b0 == '\t' || b0 == '\n' || b0 == '\r' ||
		b1 == ' ' || b1 == '\t' || b1 == '\n' || b1 == '\r'
}
