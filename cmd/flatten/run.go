package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"dataprep/internal/cli"
	"dataprep/internal/config"
	"dataprep/internal/datasource/file"
	"dataprep/internal/datasource/httpds"
	"dataprep/internal/fingerprint"
	"dataprep/internal/metrics"
	csvout "dataprep/internal/output/csv"
	"dataprep/internal/output/xlsx"
	jsonparser "dataprep/internal/parser/json"
	"dataprep/internal/table"
	"dataprep/internal/transformer"
)

// run flattens the JSON record export into one table and serializes it to
// CSV and, when configured, XLSX. The whole document is materialized:
// column discovery needs every record before the first output row can be
// shaped. Both outputs are written from the same block, so they cannot
// diverge.
func run(ctx context.Context, job config.Job) error {
	fl := job.Flatten
	start := time.Now()

	if !httpds.IsURL(job.Source.Path) && !file.Exists(job.Source.Path) {
		return fmt.Errorf("source file not found: expected input at %s; update the job config if the dataset has moved", job.Source.Path)
	}

	in, err := cli.OpenInput(ctx, job.Source.Path)
	if err != nil {
		return err
	}
	defer in.Close()

	readStart := time.Now()
	b, err := jsonparser.Flatten(ctx, in, fl.RecordsField)
	metrics.RecordStep("flatten", "read", err, time.Since(readStart))
	if err != nil {
		return err
	}

	transformStart := time.Now()
	rep, err := transformer.Apply(b, *fl)
	metrics.RecordStep("flatten", "transform", err, time.Since(transformStart))
	if err != nil {
		return err
	}
	for _, s := range rep.Summaries() {
		log.Printf("%s", s)
	}
	metrics.RecordNullCells("flatten", int64(rep.Malformed()))

	rows := int64(len(b.Rows))
	cols := len(b.Columns)

	var written int64
	writeStart := time.Now()
	var g errgroup.Group
	g.Go(func() error {
		n, err := writeCSV(job.Output.Path, b)
		written = n
		return err
	})
	xlsxPath := ""
	if job.Spreadsheet != nil && job.Spreadsheet.Path != "" {
		xlsxPath = job.Spreadsheet.Path
		g.Go(func() error {
			return xlsx.Write(xlsxPath, fl.Sheet, b)
		})
	}
	err = g.Wait()
	metrics.RecordStep("flatten", "write", err, time.Since(writeStart))
	if err != nil {
		return err
	}

	var loaded int64
	if job.Storage != nil {
		sink, err := cli.OpenSink(ctx, *job.Storage, b.Columns, realColumns(b.Columns, fl))
		if err != nil {
			return err
		}
		loadStart := time.Now()
		sink.Send(b)
		loaded, err = sink.Close()
		metrics.RecordStep("flatten", "load", err, time.Since(loadStart))
		if err != nil {
			return fmt.Errorf("load %s: %w", job.Storage.Table, err)
		}
	} else {
		table.FreeRows(b)
	}

	metrics.RecordRows("flatten", "records", rows)
	metrics.RecordRows("flatten", "written", written)
	metrics.RecordRows("flatten", "loaded", loaded)

	fp, err := fingerprint.File(job.Output.Path)
	if err != nil {
		return err
	}
	log.Printf("summary: records=%d cols=%d malformed=%d loaded=%d elapsed=%s xxh3=%s",
		rows, cols, rep.Malformed(), loaded,
		time.Since(start).Truncate(time.Millisecond), fp)
	if xlsxPath != "" {
		xfp, err := fingerprint.File(xlsxPath)
		if err != nil {
			return err
		}
		log.Printf("spreadsheet: %s xxh3=%s", filepath.Base(xlsxPath), xfp)
	}
	return nil
}

// writeCSV serializes the block to path and reports how many rows landed.
func writeCSV(path string, b *table.Block) (int64, error) {
	out, err := csvout.Create(path)
	if err != nil {
		return 0, err
	}
	if err := out.WriteBlock(b); err != nil {
		out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}
	return out.Rows(), nil
}

// realColumns marks which output columns hold floats, aligned with cols.
// Those become REAL in an auto-created table; everything else stays text.
func realColumns(cols []string, fl *config.FlattenSpec) []bool {
	float := make(map[string]bool, len(fl.FloatFields)+2*len(fl.Splits))
	for _, f := range fl.FloatFields {
		float[f] = true
	}
	for _, sp := range fl.Splits {
		float[sp.Left] = true
		float[sp.Right] = true
	}
	mask := make([]bool, len(cols))
	for i, c := range cols {
		mask[i] = float[c]
	}
	return mask
}
