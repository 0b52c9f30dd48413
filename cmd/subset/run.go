package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dataprep/internal/cli"
	"dataprep/internal/config"
	"dataprep/internal/datasource/file"
	"dataprep/internal/datasource/httpds"
	"dataprep/internal/fingerprint"
	"dataprep/internal/metrics"
	csvout "dataprep/internal/output/csv"
	csvparser "dataprep/internal/parser/csv"
	"dataprep/internal/table"
)

// run builds the feature subset: it picks the first existing input, checks
// that every configured source column is present, then streams the data
// through a rename-and-reorder projection. The output column order is fixed
// by the feature groups, target first, regardless of source order.
func run(ctx context.Context, job config.Job) error {
	feats := job.Features
	start := time.Now()

	fallback := ""
	if job.Fallback != nil {
		fallback = job.Fallback.Path
	}
	src, err := selectSource(job.Source.Path, fallback)
	if err != nil {
		return err
	}
	if job.Runtime.Verbose {
		log.Printf("reading %s", src)
	}

	in, err := cli.OpenInput(ctx, src)
	if err != nil {
		return err
	}
	defer in.Close()

	rd, err := csvparser.NewReader(in, cli.ReaderOptions(job.CSV))
	if err != nil {
		return err
	}

	idx, err := resolveColumns(rd.Columns(), feats.SourceColumns())
	if err != nil {
		return err
	}
	outCols := feats.OutputColumns()

	out, err := csvout.Create(job.Output.Path)
	if err != nil {
		return err
	}
	// Header first, so even an empty data section yields a valid file.
	if err := out.WriteBlock(&table.Block{Columns: outCols}); err != nil {
		out.Close()
		return err
	}

	var sink *cli.Sink
	if job.Storage != nil {
		sink, err = cli.OpenSink(ctx, *job.Storage, outCols, nil)
		if err != nil {
			out.Close()
			return err
		}
	}

	selectStart := time.Now()
	read, err := subsetBlocks(ctx, rd, out, sink, outCols, idx, job.Runtime.Verbose)
	metrics.RecordStep("subset", "select", err, time.Since(selectStart))
	if err != nil {
		out.Close()
		if sink != nil {
			sink.Close()
		}
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	var loaded int64
	if sink != nil {
		loadStart := time.Now()
		loaded, err = sink.Close()
		metrics.RecordStep("subset", "load", err, time.Since(loadStart))
		if err != nil {
			return fmt.Errorf("load %s: %w", job.Storage.Table, err)
		}
	}

	metrics.RecordRows("subset", "read", read)
	metrics.RecordRows("subset", "written", out.Rows())
	metrics.RecordRows("subset", "skipped", int64(rd.Skipped()))
	metrics.RecordRows("subset", "ragged", int64(rd.Ragged()))
	metrics.RecordRows("subset", "loaded", loaded)

	fp, err := fingerprint.File(job.Output.Path)
	if err != nil {
		return err
	}
	log.Printf("summary: source=%s rows=%d cols=%d skipped=%d ragged=%d loaded=%d elapsed=%s xxh3=%s",
		filepath.Base(src), out.Rows(), len(outCols), rd.Skipped(), rd.Ragged(), loaded,
		time.Since(start).Truncate(time.Millisecond), fp)

	fmt.Printf("Saved subset with %d rows to %s.\n", out.Rows(), filepath.Base(job.Output.Path))
	return nil
}

// selectSource picks the first usable input: a URL is taken as-is, a local
// path must exist. With no usable candidate the not-found error names every
// path that was tried.
func selectSource(primary, fallback string) (string, error) {
	for _, p := range []string{primary, fallback} {
		if p == "" {
			continue
		}
		if httpds.IsURL(p) || file.Exists(p) {
			return p, nil
		}
	}
	return file.FirstExisting(primary, fallback)
}

// resolveColumns maps every requested source column to its position in the
// header, first occurrence winning on duplicates. When any are absent the
// error names all of them at once, sorted, so one run surfaces the whole
// gap between the configured groups and the file.
func resolveColumns(header, sources []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, c := range header {
		if _, ok := pos[c]; !ok {
			pos[c] = i
		}
	}

	idx := make([]int, len(sources))
	var missing []string
	for i, c := range sources {
		p, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			idx[i] = -1
			continue
		}
		idx[i] = p
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing columns in source CSV; update the predictor lists or regenerate the input: %s",
			strings.Join(missing, ", "))
	}
	return idx, nil
}

// subsetBlocks drains the reader, projects every block onto the renamed
// output columns and appends it to the output. Blocks go to the sink after
// the CSV write; the sink owns freeing them. Returns how many rows were
// read.
func subsetBlocks(ctx context.Context, rd *csvparser.Reader, out *csvout.Writer, sink *cli.Sink, outCols []string, idx []int, verbose bool) (int64, error) {
	var read int64
	blocks := 0
	for {
		b, err := rd.Next(ctx)
		if err == io.EOF {
			return read, nil
		}
		if err != nil {
			return read, err
		}
		read += int64(len(b.Rows))

		sb := b.Project(outCols, idx)
		table.FreeRows(b)
		n := len(sb.Rows)
		if err := out.WriteBlock(sb); err != nil {
			table.FreeRows(sb)
			return read, err
		}
		if sink != nil {
			sink.Send(sb)
		} else {
			table.FreeRows(sb)
		}

		blocks++
		if verbose {
			log.Printf("block %d: rows=%d total=%d", blocks, n, read)
		}
	}
}
