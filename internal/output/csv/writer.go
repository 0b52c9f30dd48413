// Package csv writes row blocks to CSV files. One Writer accumulates any
// number of blocks into a single file, writing the header exactly once,
// so chunked pipelines can append block after block without keeping the
// table in memory.
package csv

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"dataprep/internal/table"
)

// Writer streams blocks into one CSV file.
type Writer struct {
	f           *os.File
	bw          *bufio.Writer
	cw          *csv.Writer
	rec         []string
	wroteHeader bool
	rows        int64
}

// Create opens path for writing, truncating any previous file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	return &Writer{f: f, bw: bw, cw: csv.NewWriter(bw)}, nil
}

// WriteBlock appends every row of b. The first block also contributes
// the header row; later blocks must share its column order.
func (w *Writer) WriteBlock(b *table.Block) error {
	if !w.wroteHeader {
		if err := w.cw.Write(b.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		w.wroteHeader = true
	}
	for _, row := range b.Rows {
		if cap(w.rec) < len(row) {
			w.rec = make([]string, len(row))
		}
		rec := w.rec[:len(row)]
		for i, v := range row {
			rec[i] = formatCell(v)
		}
		if err := w.cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", w.rows+1, err)
		}
		w.rows++
	}
	return nil
}

// Rows reports how many data rows have been written so far.
func (w *Writer) Rows() int64 { return w.rows }

// Close flushes buffered output and closes the file. The first error
// encountered wins; Close is safe to call after a failed write.
func (w *Writer) Close() error {
	w.cw.Flush()
	err := w.cw.Error()
	if ferr := w.bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// formatCell renders one cell for CSV output. Floats print in plain
// decimal notation so prices never come out in scientific form, and
// numbers that were never coerced keep their source spelling.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
