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

// main is the entry point for the column-dropping binary. It resolves the
// job from defaults, config file and flags, validates it, wires metrics and
// executes the run.
func main() {
	var flags cli.CommonFlags
	flags.Register(flag.CommandLine)
	suffix := flag.String("suffix", "", "override the drop suffix")
	chunkSize := flag.Int("chunk-size", 0, "override the rows-per-block size")
	flag.Parse()

	job, err := cli.LoadJob("dropcols", flags.Config)
	if err != nil {
		cli.Fatalf("%v", err)
	}
	flags.Apply(&job)
	applyFlags(&job, *suffix, *chunkSize)

	if cli.ReportIssues(config.ValidateJob(job)) {
		log.Printf("Configuration is invalid: %s", cli.ConfigName(flags.Config))
		os.Exit(1)
	}
	if flags.Validate {
		log.Printf("Configuration is valid: %s", cli.ConfigName(flags.Config))
		os.Exit(0)
	}

	flush := cli.SetupMetrics("dropcols", job.Runtime)
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
func applyFlags(job *config.Job, suffix string, chunkSize int) {
	if suffix != "" {
		if job.Drop == nil {
			job.Drop = &config.DropSpec{}
		}
		job.Drop.Suffix = suffix
	}
	if chunkSize > 0 {
		if job.CSV == nil {
			job.CSV = config.Options{}
		}
		job.CSV["chunk_size"] = chunkSize
	}
}
