package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

/*
TestValidateJob_UnknownKind verifies that an unknown or empty kind is an
error-severity issue at path "kind".
*/
func TestValidateJob_UnknownKind(t *testing.T) {
	t.Parallel()

	issues := ValidateJob(Job{Kind: "shuffle"})
	if !hasIssue(t, issues, SeverityError, "kind", "unknown job kind") {
		t.Fatalf("issues = %v, want unknown-kind error", issues)
	}

	issues = ValidateJob(Job{})
	if !hasIssue(t, issues, SeverityError, "kind", "must not be empty") {
		t.Fatalf("issues = %v, want empty-kind error", issues)
	}
}

/*
TestValidateJob_Paths verifies source/output presence checks and the chunk
size floor.
*/
func TestValidateJob_Paths(t *testing.T) {
	t.Parallel()

	j := Job{Kind: "dropcols", Drop: &DropSpec{Suffix: "R"}}
	issues := ValidateJob(j)
	if !hasIssue(t, issues, SeverityError, "source.path", "non-empty") {
		t.Fatalf("issues = %v, want source.path error", issues)
	}
	if !hasIssue(t, issues, SeverityError, "output.path", "non-empty") {
		t.Fatalf("issues = %v, want output.path error", issues)
	}

	j = DefaultDropCols()
	j.CSV = Options{"chunk_size": float64(0)}
	issues = ValidateJob(j)
	if !hasIssue(t, issues, SeverityError, "csv.chunk_size", "at least 1") {
		t.Fatalf("issues = %v, want chunk_size error", issues)
	}
}

/*
TestValidateJob_Drop verifies the dropcols-specific checks: the section must
exist and the suffix must be non-empty (an empty suffix matches everything).
*/
func TestValidateJob_Drop(t *testing.T) {
	t.Parallel()

	j := DefaultDropCols()
	j.Drop = nil
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityError, "drop", "requires a drop section") {
		t.Fatalf("issues = %v, want missing-drop error", issues)
	}

	j = DefaultDropCols()
	j.Drop.Suffix = ""
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityError, "drop.suffix", "must not be empty") {
		t.Fatalf("issues = %v, want empty-suffix error", issues)
	}
}

/*
TestValidateJob_Features verifies the degenerate and duplicate feature spec
cases: no predictors is an error, as are duplicate sources or output names
anywhere in the feature spec (target included).
*/
func TestValidateJob_Features(t *testing.T) {
	t.Parallel()

	j := DefaultSubset()
	j.Features = &FeatureSpec{Target: Pair{Source: "Q49", Rename: "LifeSat"}}
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityError, "features.groups", "no predictor columns") {
		t.Fatalf("issues = %v, want degenerate-spec error", issues)
	}

	j = DefaultSubset()
	j.Features = &FeatureSpec{
		Target: Pair{Source: "Q49", Rename: "LifeSat"},
		Groups: []Group{{Label: "g", Columns: []Pair{
			{Source: "Q47", Rename: "SHealth"},
			{Source: "Q47", Rename: "Other"},
		}}},
	}
	issues := ValidateJob(j)
	if !hasIssue(t, issues, SeverityError, "features.groups[0].columns[1]", `source column "Q47" already used`) {
		t.Fatalf("issues = %v, want duplicate-source error", issues)
	}

	j.Features.Groups[0].Columns = []Pair{
		{Source: "Q47", Rename: "LifeSat"},
	}
	issues = ValidateJob(j)
	if !hasIssue(t, issues, SeverityError, "features.groups[0].columns[0]", `output name "LifeSat" already used`) {
		t.Fatalf("issues = %v, want duplicate-rename error", issues)
	}

	j = DefaultSubset()
	j.Fallback = nil
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityWarning, "fallback.path", "no fallback") {
		t.Fatalf("issues = %v, want fallback warning", issues)
	}
}

/*
TestValidateJob_Flatten verifies split completeness and the spreadsheet
warning.
*/
func TestValidateJob_Flatten(t *testing.T) {
	t.Parallel()

	j := DefaultFlatten()
	j.Flatten.Splits = append(j.Flatten.Splits, Split{Source: "x"})
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityError, "flatten.splits[2]", "source, left and right") {
		t.Fatalf("issues = %v, want incomplete-split error", issues)
	}

	j = DefaultFlatten()
	j.Spreadsheet = nil
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityWarning, "spreadsheet.path", "only the delimited file") {
		t.Fatalf("issues = %v, want spreadsheet warning", issues)
	}

	j = DefaultFlatten()
	j.Flatten.RecordsField = ""
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityError, "flatten.records_field", "must name") {
		t.Fatalf("issues = %v, want records_field error", issues)
	}
}

/*
TestValidateJob_Storage verifies backend checks are only applied when a
storage section is present, and that unknown kinds warn while missing DSN and
table are errors.
*/
func TestValidateJob_Storage(t *testing.T) {
	t.Parallel()

	j := DefaultDropCols()
	if issues := ValidateJob(j); HasErrors(issues) {
		t.Fatalf("no-storage default has errors: %v", issues)
	}

	j.Storage = &Storage{Kind: "orbitdb", DSN: "", Table: ""}
	issues := ValidateJob(j)
	if !hasIssue(t, issues, SeverityWarning, "storage.kind", "unknown storage kind") {
		t.Fatalf("issues = %v, want unknown-kind warning", issues)
	}
	if !hasIssue(t, issues, SeverityError, "storage.dsn", "must not be empty") {
		t.Fatalf("issues = %v, want dsn error", issues)
	}
	if !hasIssue(t, issues, SeverityError, "storage.table", "must not be empty") {
		t.Fatalf("issues = %v, want table error", issues)
	}

	j.Storage = &Storage{Kind: "sqlite", DSN: "file:x.db", Table: "t", BatchSize: -1}
	if issues := ValidateJob(j); !hasIssue(t, issues, SeverityError, "storage.batch_size", "negative") {
		t.Fatalf("issues = %v, want batch_size error", issues)
	}
}
