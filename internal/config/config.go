// Package config defines the JSON-serializable job model for the reshaping
// tools. It is intentionally small, explicit, and dependency-free so that jobs
// can be loaded from disk (or built from flags) and passed through the program
// without additional glue code.
//
// Design goals:
//
//  1. Explicitness: everything the original scripts kept as source-level
//     constants (paths, suffixes, column tables) is a value here, validated at
//     the boundary before a pipeline runs.
//  2. Clarity: Go field names mirror the JSON structure used in job files
//     under configs/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library, with a light Options helper for typed access to
//     the loose CSV knobs.
//
// Example (trimmed):
//
//	{
//	  "kind":   "dropcols",
//	  "source": { "path": "data/survey.csv" },
//	  "output": { "path": "data/survey_no_R.csv" },
//	  "drop":   { "suffix": "R" },
//	  "csv":    { "chunk_size": 50000 }
//	}
package config

import "encoding/json"

// Job is the top-level object decoded from a job file. Exactly one of the
// kind-specific sections (Drop, Features, Flatten) is consulted, selected by
// Kind.
type Job struct {
	// Kind selects the pipeline: "dropcols", "subset" or "flatten".
	Kind string `json:"kind"`

	// Source is the input file. Subset jobs treat it as the preferred input
	// and consult Fallback when it does not exist.
	Source   FileSpec  `json:"source"`
	Fallback *FileSpec `json:"fallback,omitempty"`

	// Output is the primary output file. Flatten jobs additionally write
	// Spreadsheet with identical data and column order.
	Output      FileSpec  `json:"output"`
	Spreadsheet *FileSpec `json:"spreadsheet,omitempty"`

	Drop     *DropSpec    `json:"drop,omitempty"`
	Features *FeatureSpec `json:"features,omitempty"`
	Flatten  *FlattenSpec `json:"flatten,omitempty"`

	// CSV is a free-form bag of reader knobs shared by the CSV-based jobs.
	// Typical keys: chunk_size (int), comma (string), trim_space (bool).
	CSV Options `json:"csv"`

	// Storage optionally loads the produced dataset into a database.
	Storage *Storage `json:"storage,omitempty"`

	Runtime Runtime `json:"runtime"`
}

// FileSpec names a file taking part in a job.
type FileSpec struct {
	Path string `json:"path"`
}

// DropSpec configures the column dropper.
type DropSpec struct {
	// Suffix marks columns to remove: any column whose name ends with it is
	// dropped. The survey convention uses "R" for recoded duplicates.
	Suffix string `json:"suffix"`
}

// FeatureSpec is the ordered subset-and-rename table for the feature
// subsetter: one target pair plus predictor pairs grouped by construct.
// JSON arrays keep the declaration order, which fixes the output column
// order: target first, then groups in order, then pairs in group order.
type FeatureSpec struct {
	Target Pair    `json:"target"`
	Groups []Group `json:"groups"`
}

// Group is one named construct holding ordered column pairs.
type Group struct {
	Label   string `json:"label"`
	Columns []Pair `json:"columns"`
}

// Pair maps one source column to its output name.
type Pair struct {
	Source string `json:"source"`
	Rename string `json:"rename"`
}

// FlattenSpec configures the transaction flattener.
type FlattenSpec struct {
	// RecordsField is the top-level JSON field holding the record list.
	RecordsField string `json:"records_field"`

	// FloatFields are parsed from string to float in place; absent or empty
	// cells become null, malformed cells become null and are tallied.
	FloatFields []string `json:"float_fields"`

	// Splits derive two float columns from each compound "a<sep>b" field.
	// The source column is retained; Left and Right are appended to the
	// table in declaration order.
	Splits []Split `json:"splits"`

	// Separator between the two compound parts. Defaults to "/".
	Separator string `json:"separator"`

	// Sheet is the spreadsheet tab name. Defaults to "Sheet1".
	Sheet string `json:"sheet"`

	// SampleLimit caps how many malformed samples are kept per field.
	SampleLimit int `json:"sample_limit"`
}

// Split names a compound source column and the two derived columns.
type Split struct {
	Source string `json:"source"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

// Storage selects and configures the optional database sink.
type Storage struct {
	// Kind selects the backend: "sqlite", "postgres", "mssql" or "mysql".
	Kind string `json:"kind"`

	// DSN is the backend connection string (file path for sqlite).
	DSN string `json:"dsn"`

	// Table is the destination table; fully qualified names are accepted
	// where the backend supports schemas (e.g. "public.subset").
	Table string `json:"table"`

	// BatchSize bounds rows per bulk insert. Zero means the loader default.
	BatchSize int `json:"batch_size"`

	// AutoCreateTable creates the destination table from the dataset's
	// columns before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Runtime carries cross-cutting run controls.
type Runtime struct {
	Verbose        bool   `json:"verbose"`
	MetricsBackend string `json:"metrics_backend"`
	PushgatewayURL string `json:"pushgateway_url"`
	StatsdAddr     string `json:"statsd_addr"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It performs only
// minimal type coercion and returns the provided default when a key is absent
// or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// so this accepts float64 and casts.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def when missing
// or empty. Used for single-character settings such as the CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON decodes a missing or null options object to a non-nil, empty
// map so call sites never nil-check.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
