// This file adds a lightweight linter/validator for Job values. It performs
// static checks over a decoded Job and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Job.
//
// Path is a dotted path into the config (e.g. "features.groups[1]",
// "storage.kind"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the slice is error-severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateJob performs static validation of a Job. It does not mutate the
// job; callers decide whether warnings block execution.
//
// Example:
//
//	var j config.Job
//	if err := json.NewDecoder(r).Decode(&j); err != nil { ... }
//	for _, iss := range config.ValidateJob(j) {
//	    fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func ValidateJob(j Job) []Issue {
	var issues []Issue

	switch j.Kind {
	case "dropcols", "subset", "flatten":
	case "":
		issues = append(issues, Issue{SeverityError, "kind", "kind must not be empty"})
	default:
		issues = append(issues, Issue{SeverityError, "kind",
			fmt.Sprintf("unknown job kind %q; want dropcols, subset or flatten", j.Kind)})
	}

	if strings.TrimSpace(j.Source.Path) == "" {
		issues = append(issues, Issue{SeverityError, "source.path", "source requires a non-empty path"})
	}
	if strings.TrimSpace(j.Output.Path) == "" {
		issues = append(issues, Issue{SeverityError, "output.path", "output requires a non-empty path"})
	}
	if chunk := j.CSV.Int("chunk_size", DefaultChunkSize); chunk < 1 {
		issues = append(issues, Issue{SeverityError, "csv.chunk_size",
			fmt.Sprintf("chunk_size=%d; must be at least 1", chunk)})
	}

	switch j.Kind {
	case "dropcols":
		issues = append(issues, validateDrop(j.Drop)...)
	case "subset":
		issues = append(issues, validateFeatures(j.Features)...)
		if j.Fallback == nil || strings.TrimSpace(j.Fallback.Path) == "" {
			issues = append(issues, Issue{SeverityWarning, "fallback.path",
				"no fallback source configured; the job fails when the preferred source is absent"})
		}
	case "flatten":
		issues = append(issues, validateFlatten(j.Flatten)...)
		if j.Spreadsheet == nil || strings.TrimSpace(j.Spreadsheet.Path) == "" {
			issues = append(issues, Issue{SeverityWarning, "spreadsheet.path",
				"no spreadsheet output configured; only the delimited file will be written"})
		}
	}

	if j.Storage != nil {
		issues = append(issues, validateStorage(*j.Storage)...)
	}

	return issues
}

func validateDrop(d *DropSpec) []Issue {
	if d == nil {
		return []Issue{{SeverityError, "drop", "dropcols job requires a drop section"}}
	}
	if d.Suffix == "" {
		return []Issue{{SeverityError, "drop.suffix", "suffix must not be empty; an empty suffix matches every column"}}
	}
	return nil
}

func validateFeatures(f *FeatureSpec) []Issue {
	if f == nil {
		return []Issue{{SeverityError, "features", "subset job requires a features section"}}
	}

	var issues []Issue
	if strings.TrimSpace(f.Target.Source) == "" || strings.TrimSpace(f.Target.Rename) == "" {
		issues = append(issues, Issue{SeverityError, "features.target",
			"target requires both source and rename"})
	}

	pairs := f.Pairs()
	if len(pairs) == 0 {
		issues = append(issues, Issue{SeverityError, "features.groups",
			"no predictor columns configured; populate the groups before running"})
		return issues
	}
	for gi, g := range f.Groups {
		if len(g.Columns) == 0 {
			issues = append(issues, Issue{SeverityWarning,
				fmt.Sprintf("features.groups[%d]", gi),
				fmt.Sprintf("group %q declares no columns", g.Label)})
		}
	}

	// Identifiers must be unique across the whole spec, target included.
	seenSrc := map[string]string{f.Target.Source: "features.target"}
	seenOut := map[string]string{f.Target.Rename: "features.target"}
	for gi, g := range f.Groups {
		for ci, p := range g.Columns {
			path := fmt.Sprintf("features.groups[%d].columns[%d]", gi, ci)
			if strings.TrimSpace(p.Source) == "" || strings.TrimSpace(p.Rename) == "" {
				issues = append(issues, Issue{SeverityError, path,
					"pair requires both source and rename"})
				continue
			}
			if prev, dup := seenSrc[p.Source]; dup {
				issues = append(issues, Issue{SeverityError, path,
					fmt.Sprintf("source column %q already used at %s", p.Source, prev)})
			} else {
				seenSrc[p.Source] = path
			}
			if prev, dup := seenOut[p.Rename]; dup {
				issues = append(issues, Issue{SeverityError, path,
					fmt.Sprintf("output name %q already used at %s", p.Rename, prev)})
			} else {
				seenOut[p.Rename] = path
			}
		}
	}

	return issues
}

func validateFlatten(f *FlattenSpec) []Issue {
	if f == nil {
		return []Issue{{SeverityError, "flatten", "flatten job requires a flatten section"}}
	}

	var issues []Issue
	if strings.TrimSpace(f.RecordsField) == "" {
		issues = append(issues, Issue{SeverityError, "flatten.records_field",
			"records_field must name the list holding the records"})
	}
	if len(f.FloatFields) == 0 && len(f.Splits) == 0 {
		issues = append(issues, Issue{SeverityWarning, "flatten",
			"no float_fields or splits configured; the table is written as decoded"})
	}
	for i, s := range f.Splits {
		path := fmt.Sprintf("flatten.splits[%d]", i)
		if strings.TrimSpace(s.Source) == "" || strings.TrimSpace(s.Left) == "" || strings.TrimSpace(s.Right) == "" {
			issues = append(issues, Issue{SeverityError, path,
				"split requires source, left and right column names"})
		}
	}
	if f.SampleLimit < 0 {
		issues = append(issues, Issue{SeverityError, "flatten.sample_limit",
			"sample_limit must not be negative"})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{SeverityError, "storage.kind", "storage.kind must not be empty"})
		return issues
	}
	known := map[string]struct{}{
		"postgres": {},
		"mysql":    {},
		"mssql":    {},
		"sqlite":   {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{SeverityWarning, "storage.kind",
			fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind)})
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.dsn", "storage.dsn must not be empty"})
	}
	if strings.TrimSpace(s.Table) == "" {
		issues = append(issues, Issue{SeverityError, "storage.table", "storage.table must not be empty"})
	}
	if s.BatchSize < 0 {
		issues = append(issues, Issue{SeverityError, "storage.batch_size", "batch_size must not be negative"})
	}

	return issues
}
