// Package cli carries the pieces shared by the command-line tools: job
// loading with flag-over-file-over-default precedence, validation
// reporting, input opening, metrics backend selection, CSV reader options
// and the fatal-exit helper.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"dataprep/internal/config"
	"dataprep/internal/datasource"
	"dataprep/internal/datasource/file"
	"dataprep/internal/datasource/httpds"
	"dataprep/internal/metrics"
	"dataprep/internal/metrics/datadog"
	"dataprep/internal/metrics/prompush"
	csvparser "dataprep/internal/parser/csv"
)

// osExit is swapped out by tests that exercise Fatalf.
var osExit = os.Exit

// Fatalf prints one formatted line to stderr and exits 1.
func Fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	osExit(1)
}

// LoadJob builds the job a tool runs: the built-in defaults for kind,
// overlaid with the JSON config file when path is non-empty. Decoding into
// the populated default keeps absent fields at their defaults, so a config
// file only needs the values it changes.
func LoadJob(kind, path string) (config.Job, error) {
	job, ok := config.Default(kind)
	if !ok {
		return config.Job{}, fmt.Errorf("no built-in defaults for job kind %q", kind)
	}
	if path == "" {
		return job, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config.Job{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&job); err != nil {
		return config.Job{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if job.Kind != kind {
		return config.Job{}, fmt.Errorf("config %s declares job kind %q, this tool runs %q", path, job.Kind, kind)
	}
	return job, nil
}

// ConfigName names the config source in console messages.
func ConfigName(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}

// ReportIssues prints every validation issue to stderr and reports whether
// any of them blocks the run.
func ReportIssues(issues []config.Issue) bool {
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	return config.HasErrors(issues)
}

// OpenInput opens the stream behind an input path. http(s) URLs are
// fetched with retry and backoff; anything else is a local file opened
// with a sequential read hint.
func OpenInput(ctx context.Context, path string) (io.ReadCloser, error) {
	var src datasource.Source
	if httpds.IsURL(path) {
		src = httpds.New(path, httpds.Config{})
	} else {
		src = file.NewLocal(path).WithSequentialHint()
	}
	return src.Open(ctx)
}

// ReaderOptions maps the loosely typed csv options bag onto the CSV
// reader's typed options.
func ReaderOptions(o config.Options) csvparser.Options {
	return csvparser.Options{
		Comma:      o.Rune("comma", ','),
		TrimSpace:  o.Bool("trim_space", false),
		ChunkSize:  o.Int("chunk_size", config.DefaultChunkSize),
		LazyQuotes: o.Bool("lazy_quotes", false),
	}
}

// SetupMetrics installs the metrics backend the runtime selects and returns
// the flush function for the end of the run. Selection falls back from the
// job's runtime section to the environment; with neither set, the nop
// backend stays installed and the returned function does nothing.
func SetupMetrics(jobName string, rt config.Runtime) func() {
	nop := func() {}
	flush := func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}

	name := rt.MetricsBackend
	if name == "" {
		name = os.Getenv("METRICS_BACKEND")
	}

	switch name {
	case "pushgateway":
		gwURL := rt.PushgatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return nop
		}
		log.Printf("metrics: backend=%s url=%s job=%s", name, gwURL, jobName)
		metrics.SetBackend(b)
		return flush

	case "datadog":
		addr := rt.StatsdAddr
		if addr == "" {
			addr = os.Getenv("DD_AGENT_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{Addr: addr})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return nop
		}
		log.Printf("metrics: backend=%s addr=%s job=%s", name, addr, jobName)
		metrics.SetBackend(b)
		return flush

	case "", "none":
		return nop

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", name)
		return nop
	}
}
