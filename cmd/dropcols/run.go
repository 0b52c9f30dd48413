package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
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

// run streams the source CSV block by block, drops every column whose name
// ends with the configured suffix and appends the survivors to the output
// file. The drop set comes from the header alone; the same positional mask
// applies to every block, so a name absent from later data is structurally
// harmless.
func run(ctx context.Context, job config.Job) error {
	suffix := job.Drop.Suffix
	start := time.Now()

	if !httpds.IsURL(job.Source.Path) && !file.Exists(job.Source.Path) {
		return fmt.Errorf("source file not found: expected input at %s; update the job config if the dataset has moved", job.Source.Path)
	}

	fmt.Printf("Loading column headers from %s...\n", filepath.Base(job.Source.Path))

	in, err := cli.OpenInput(ctx, job.Source.Path)
	if err != nil {
		return err
	}
	defer in.Close()

	rd, err := csvparser.NewReader(in, cli.ReaderOptions(job.CSV))
	if err != nil {
		return err
	}

	keep, idx, dropped := splitHeader(rd.Columns(), suffix)
	if len(dropped) == 0 {
		fmt.Printf("No columns ending with %q found; nothing to filter.\n", suffix)
		return nil
	}
	fmt.Println(dropSample(dropped))

	out, err := csvout.Create(job.Output.Path)
	if err != nil {
		return err
	}
	// Header first, so even an empty data section yields a valid file.
	if err := out.WriteBlock(&table.Block{Columns: keep}); err != nil {
		out.Close()
		return err
	}

	var sink *cli.Sink
	if job.Storage != nil {
		sink, err = cli.OpenSink(ctx, *job.Storage, keep, nil)
		if err != nil {
			out.Close()
			return err
		}
	}

	filterStart := time.Now()
	read, err := filterBlocks(ctx, rd, out, sink, keep, idx, job.Runtime.Verbose)
	metrics.RecordStep("dropcols", "filter", err, time.Since(filterStart))
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
		metrics.RecordStep("dropcols", "load", err, time.Since(loadStart))
		if err != nil {
			return fmt.Errorf("load %s: %w", job.Storage.Table, err)
		}
	}

	metrics.RecordRows("dropcols", "read", read)
	metrics.RecordRows("dropcols", "written", out.Rows())
	metrics.RecordRows("dropcols", "skipped", int64(rd.Skipped()))
	metrics.RecordRows("dropcols", "ragged", int64(rd.Ragged()))
	metrics.RecordRows("dropcols", "loaded", loaded)

	fp, err := fingerprint.File(job.Output.Path)
	if err != nil {
		return err
	}
	log.Printf("summary: rows=%d cols_kept=%d cols_dropped=%d skipped=%d ragged=%d loaded=%d elapsed=%s xxh3=%s",
		out.Rows(), len(keep), len(dropped), rd.Skipped(), rd.Ragged(), loaded,
		time.Since(start).Truncate(time.Millisecond), fp)

	fmt.Printf("Filtered dataset written to %s with %d columns removed.\n",
		filepath.Base(job.Output.Path), len(dropped))
	return nil
}

// splitHeader partitions the header by the suffix rule. keep and idx follow
// the dest->source convention of Block.Project; dropped keeps the original
// spelling for the console sample.
func splitHeader(columns []string, suffix string) (keep []string, idx []int, dropped []string) {
	for i, c := range columns {
		if strings.HasSuffix(c, suffix) {
			dropped = append(dropped, c)
			continue
		}
		keep = append(keep, c)
		idx = append(idx, i)
	}
	return keep, idx, dropped
}

// dropSample renders the console line naming the first few dropped columns.
func dropSample(dropped []string) string {
	sample := dropped
	ellipsis := ""
	if len(sample) > 5 {
		sample = sample[:5]
		ellipsis = "..."
	}
	return "Dropping columns (sample): " + strings.Join(sample, ", ") + ellipsis
}

// filterBlocks drains the reader, projects every block onto the kept
// columns and appends it to the output. Blocks go to the sink after the CSV
// write; the sink owns freeing them. Returns how many rows were read.
func filterBlocks(ctx context.Context, rd *csvparser.Reader, out *csvout.Writer, sink *cli.Sink, keep []string, idx []int, verbose bool) (int64, error) {
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

		fb := b.Project(keep, idx)
		table.FreeRows(b)
		n := len(fb.Rows)
		if err := out.WriteBlock(fb); err != nil {
			table.FreeRows(fb)
			return read, err
		}
		if sink != nil {
			sink.Send(fb)
		} else {
			table.FreeRows(fb)
		}

		blocks++
		if verbose {
			log.Printf("block %d: rows=%d total=%d", blocks, n, read)
		}
	}
}
