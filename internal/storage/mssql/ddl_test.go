package mssql

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"dataprep/internal/ddl"
	"dataprep/internal/storage"
)

// TestMapTypeMSSQL verifies the logical-kind to SQL Server type mapping,
// including the NVARCHAR(MAX) fallback for unknown kinds.
func TestMapTypeMSSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{ddl.TypeReal, "FLOAT"},
		{"float", "FLOAT"},
		{"double", "FLOAT"},
		{"numeric", "DECIMAL(38, 10)"},
		{"decimal", "DECIMAL(38, 10)"},
		{"int", "BIGINT"},
		{"integer", "BIGINT"},
		{"bigint", "BIGINT"},
		{"bool", "BIT"},
		{"boolean", "BIT"},
		{"date", "DATE"},
		{"timestamp", "DATETIME2"},
		{"datetime", "DATETIME2"},
		{"timestamptz", "DATETIME2"},
		{"uuid", "UNIQUEIDENTIFIER"},
		{ddl.TypeText, "NVARCHAR(MAX)"},
		{"anything else", "NVARCHAR(MAX)"},
		{" BigInt ", "BIGINT"},
	}
	for _, tt := range tests {
		if got := mapType(tt.in); got != tt.want {
			t.Errorf("mapType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestCreateTableSQLErrors validates error handling and basic input
// validation in createTableSQL.
func TestCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  ddl.TableDef
	}{
		{
			name: "empty FQN",
			def: ddl.TableDef{
				FQN:     "   ",
				Columns: []ddl.ColumnDef{{Name: "id", SQLType: "bigint"}},
			},
		},
		{
			name: "no columns",
			def: ddl.TableDef{
				FQN:     "dbo.transactions",
				Columns: nil,
			},
		},
		{
			name: "column empty name",
			def: ddl.TableDef{
				FQN: "dbo.transactions",
				Columns: []ddl.ColumnDef{
					{Name: "id", SQLType: "bigint"},
					{Name: "   ", SQLType: "int"},
				},
			},
		},
		{
			name: "column missing SQLType",
			def: ddl.TableDef{
				FQN: "dbo.transactions",
				Columns: []ddl.ColumnDef{
					{Name: "id", SQLType: ""},
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := createTableSQL(tt.def)
			if err == nil {
				t.Fatalf("createTableSQL(%+v) error = nil, want non-nil", tt.def)
			}
			if got != "" {
				t.Fatalf("createTableSQL(%+v) SQL = %q, want empty string on error", tt.def, got)
			}
		})
	}
}

// TestCreateTableSQLFlattenShape verifies the guarded script rendered for a
// typical flattened transaction table.
func TestCreateTableSQLFlattenShape(t *testing.T) {
	t.Parallel()

	def := ddl.TableFor("dbo.transactions",
		[]string{"serial_no", "transaction_price"}, []bool{false, true})

	got, err := createTableSQL(def)
	if err != nil {
		t.Fatalf("createTableSQL() error = %v", err)
	}

	want := "" +
		"IF OBJECT_ID(N'[dbo].[transactions]', N'U') IS NULL\n" +
		"BEGIN\n" +
		"  CREATE TABLE [dbo].[transactions] (\n" +
		"    [serial_no] NVARCHAR(MAX),\n" +
		"    [transaction_price] FLOAT\n" +
		"  );\n" +
		"END;"

	if got != want {
		t.Fatalf("createTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

// TestCreateTableSQLConstraints verifies NOT NULL, raw DEFAULT expressions,
// and PRIMARY KEY rendering.
func TestCreateTableSQLConstraints(t *testing.T) {
	t.Parallel()

	def := ddl.TableDef{
		FQN: "dbo.Events",
		Columns: []ddl.ColumnDef{
			{
				Name:       "id",
				SQLType:    "bigint",
				Nullable:   false,
				PrimaryKey: true,
			},
			{
				Name:     "created_at",
				SQLType:  "datetime",
				Nullable: true,
				Default:  "SYSUTCDATETIME()",
			},
		},
	}

	got, err := createTableSQL(def)
	if err != nil {
		t.Fatalf("createTableSQL() error = %v", err)
	}

	want := "" +
		"IF OBJECT_ID(N'[dbo].[Events]', N'U') IS NULL\n" +
		"BEGIN\n" +
		"  CREATE TABLE [dbo].[Events] (\n" +
		"    [id] BIGINT NOT NULL,\n" +
		"    [created_at] DATETIME2 DEFAULT SYSUTCDATETIME(),\n" +
		"    PRIMARY KEY ([id])\n" +
		"  );\n" +
		"END;"

	if got != want {
		t.Fatalf("createTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

// fakeRepository is a test double for storage.Repository used to verify
// ensureTable behavior without hitting a real database.
type fakeRepository struct {
	storage.Repository // embed to satisfy interface if it grows
	execCalls          int
	lastSQL            string
	err                error
}

// Exec records the executed SQL and returns the configured error.
func (f *fakeRepository) Exec(ctx context.Context, sql string) error {
	f.execCalls++
	f.lastSQL = sql
	return f.err
}

// TestEnsureTableExecutesSQL verifies that ensureTable generates a guarded
// CREATE TABLE script and passes it to the repository's Exec method.
func TestEnsureTableExecutesSQL(t *testing.T) {
	t.Parallel()

	def := ddl.TableFor("dbo.transactions", []string{"serial_no"}, nil)

	var repo fakeRepository
	ctx := context.Background()

	err := ensureTable(ctx, &repo, def)
	if err != nil {
		t.Fatalf("ensureTable() error = %v", err)
	}

	if repo.execCalls != 1 {
		t.Fatalf("repo.Exec called %d times, want 1", repo.execCalls)
	}
	if repo.lastSQL == "" {
		t.Fatalf("repo.Exec was called with empty SQL")
	}
	if !strings.Contains(repo.lastSQL, "CREATE TABLE") {
		t.Fatalf("repo.Exec SQL does not contain CREATE TABLE; SQL:\n%s", repo.lastSQL)
	}
	if !strings.Contains(repo.lastSQL, "IF OBJECT_ID") {
		t.Fatalf("repo.Exec SQL does not contain the OBJECT_ID guard; SQL:\n%s", repo.lastSQL)
	}
}

// TestEnsureTablePropagatesErrors verifies that ensureTable returns errors
// from createTableSQL and from repo.Exec.
func TestEnsureTablePropagatesErrors(t *testing.T) {
	t.Parallel()

	t.Run("build error prevents exec", func(t *testing.T) {
		t.Parallel()

		// Missing FQN triggers a createTableSQL error.
		def := ddl.TableDef{
			FQN:     "",
			Columns: []ddl.ColumnDef{{Name: "id", SQLType: "bigint"}},
		}
		repo := &fakeRepository{}

		if err := ensureTable(context.Background(), repo, def); err == nil {
			t.Fatalf("ensureTable() error = nil, want non-nil for invalid TableDef")
		}
		if repo.execCalls != 0 {
			t.Fatalf("repo.Exec was called %d times, want 0 when createTableSQL fails", repo.execCalls)
		}
	})

	t.Run("exec error is returned", func(t *testing.T) {
		t.Parallel()

		def := ddl.TableFor("dbo.transactions", []string{"serial_no"}, nil)
		repo := &fakeRepository{
			err: context.Canceled, // arbitrary non-nil error
		}

		err := ensureTable(context.Background(), repo, def)
		if err == nil {
			t.Fatalf("ensureTable() error = nil, want non-nil")
		}
		if err != repo.err {
			t.Fatalf("ensureTable() error = %v, want %v", err, repo.err)
		}
		if repo.execCalls != 1 {
			t.Fatalf("repo.Exec called %d times, want 1", repo.execCalls)
		}
	})
}

// BenchmarkCreateTableSQLSmall measures the cost of rendering DDL for a
// small table definition.
func BenchmarkCreateTableSQLSmall(b *testing.B) {
	def := ddl.TableFor("dbo.transactions",
		[]string{"serial_no", "transaction_price", "district"},
		[]bool{false, true, false})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := createTableSQL(def); err != nil {
			b.Fatalf("createTableSQL() error = %v", err)
		}
	}
}

// BenchmarkCreateTableSQLWide measures the cost of rendering DDL for a table
// with many columns, approximating a wide flattened record.
func BenchmarkCreateTableSQLWide(b *testing.B) {
	const numCols = 64

	names := make([]string, 0, numCols)
	real := make([]bool, 0, numCols)
	for i := 0; i < numCols; i++ {
		names = append(names, "col_"+strconv.Itoa(i))
		real = append(real, i%2 == 0)
	}

	def := ddl.TableFor("dbo.WideTable", names, real)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := createTableSQL(def); err != nil {
			b.Fatalf("createTableSQL() error = %v", err)
		}
	}
}
