package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"dataprep/internal/cli"
	"dataprep/internal/config"

	// register all storage backends with the factory; the job config picks
	// which one a run actually uses.
	_ "dataprep/internal/storage/all"
)

// main is the entry point for the record-flattening binary. It resolves the
// job from defaults, config file and flags, validates it, wires metrics and
// executes the run.
func main() {
	var flags cli.CommonFlags
	flags.Register(flag.CommandLine)
	xlsxPath := flag.String("xlsx", "", "override the spreadsheet output path")
	recordsField := flag.String("records-field", "", "override the document field holding the record array")
	flag.Parse()

	job, err := cli.LoadJob("flatten", flags.Config)
	if err != nil {
		cli.Fatalf("%v", err)
	}
	flags.Apply(&job)
	applyFlags(&job, *xlsxPath, *recordsField)

	if cli.ReportIssues(config.ValidateJob(job)) {
		log.Printf("Configuration is invalid: %s", cli.ConfigName(flags.Config))
		os.Exit(1)
	}
	if flags.Validate {
		log.Printf("Configuration is valid: %s", cli.ConfigName(flags.Config))
		os.Exit(0)
	}

	flush := cli.SetupMetrics("flatten", job.Runtime)
	defer flush()

	start := time.Now()
	if err := run(context.Background(), job); err != nil {
		cli.Fatalf("%v", err)
	}
	if job.Runtime.Verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// applyFlags overlays the tool-specific flag values onto the job.
func applyFlags(job *config.Job, xlsxPath, recordsField string) {
	if xlsxPath != "" {
		job.Spreadsheet = &config.FileSpec{Path: xlsxPath}
	}
	if recordsField != "" {
		if job.Flatten == nil {
			job.Flatten = &config.FlattenSpec{}
		}
		job.Flatten.RecordsField = recordsField
	}
}
