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

// main is the entry point for the feature-subset binary. It resolves the
// job from defaults, config file and flags, validates it, wires metrics and
// executes the run.
func main() {
	var flags cli.CommonFlags
	flags.Register(flag.CommandLine)
	fallback := flag.String("fallback", "", "override the fallback input path")
	chunkSize := flag.Int("chunk-size", 0, "override the rows-per-block size")
	flag.Parse()

	job, err := cli.LoadJob("subset", flags.Config)
	if err != nil {
		cli.Fatalf("%v", err)
	}
	flags.Apply(&job)
	applyFlags(&job, *fallback, *chunkSize)

	if cli.ReportIssues(config.ValidateJob(job)) {
		log.Printf("Configuration is invalid: %s", cli.ConfigName(flags.Config))
		os.Exit(1)
	}
	if flags.Validate {
		log.Printf("Configuration is valid: %s", cli.ConfigName(flags.Config))
		os.Exit(0)
	}

	flush := cli.SetupMetrics("subset", job.Runtime)
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
func applyFlags(job *config.Job, fallback string, chunkSize int) {
	if fallback != "" {
		job.Fallback = &config.FileSpec{Path: fallback}
	}
	if chunkSize > 0 {
		if job.CSV == nil {
			job.CSV = config.Options{}
		}
		job.CSV["chunk_size"] = chunkSize
	}
}
