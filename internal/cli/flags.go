package cli

import (
	"flag"

	"dataprep/internal/config"
)

// CommonFlags holds the flag values every tool shares. Register binds them
// onto a FlagSet; Apply overlays the set values onto a job, giving flags
// precedence over both the config file and the built-in defaults.
type CommonFlags struct {
	Config   string
	Validate bool
	Verbose  bool

	Source string
	Output string

	Store string
	DSN   string
	Table string

	MetricsBackend string
	PushgatewayURL string
	StatsdAddr     string
}

// Register binds the common flags onto fs. Tool-specific flags are
// registered by the tools themselves.
func (f *CommonFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "job config JSON path (built-in defaults when empty)")
	fs.BoolVar(&f.Validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&f.Verbose, "v", false, "enable verbose logs")
	fs.StringVar(&f.Source, "source", "", "override the source path")
	fs.StringVar(&f.Output, "output", "", "override the output path")
	fs.StringVar(&f.Store, "store", "", "load the output into this storage kind (sqlite, postgres, mssql, mysql)")
	fs.StringVar(&f.DSN, "dsn", "", "storage DSN (with -store)")
	fs.StringVar(&f.Table, "table", "", "storage table name (with -store)")
	fs.StringVar(&f.MetricsBackend, "metrics-backend", "", "metrics backend (pushgateway, datadog, none)")
	fs.StringVar(&f.PushgatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	fs.StringVar(&f.StatsdAddr, "statsd-addr", "", "DogStatsD address (overrides env DD_AGENT_ADDR)")
}

// Apply overlays every set value onto job. Zero values leave the job field
// untouched, so unset flags never shadow the config file or the defaults.
func (f *CommonFlags) Apply(job *config.Job) {
	if f.Source != "" {
		job.Source.Path = f.Source
	}
	if f.Output != "" {
		job.Output.Path = f.Output
	}
	if f.Store != "" {
		if job.Storage == nil {
			job.Storage = &config.Storage{}
		}
		job.Storage.Kind = f.Store
	}
	if job.Storage != nil {
		if f.DSN != "" {
			job.Storage.DSN = f.DSN
		}
		if f.Table != "" {
			job.Storage.Table = f.Table
		}
	}
	if f.MetricsBackend != "" {
		job.Runtime.MetricsBackend = f.MetricsBackend
	}
	if f.PushgatewayURL != "" {
		job.Runtime.PushgatewayURL = f.PushgatewayURL
	}
	if f.StatsdAddr != "" {
		job.Runtime.StatsdAddr = f.StatsdAddr
	}
	if f.Verbose {
		job.Runtime.Verbose = true
	}
}
