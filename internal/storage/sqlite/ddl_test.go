package sqlite

import (
	"strings"
	"testing"

	"dataprep/internal/ddl"
)

// TestMapType checks the logical-kind to SQLite affinity mapping.
func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{ddl.TypeText, "TEXT"},
		{ddl.TypeReal, "REAL"},
		{"float", "REAL"},
		{"double", "REAL"},
		{"int", "INTEGER"},
		{"integer", "INTEGER"},
		{"bigint", "INTEGER"},
		{"", "TEXT"},
		{"  Real  ", "REAL"},
		{"something-else", "TEXT"},
	}
	for _, tt := range tests {
		if got := mapType(tt.in); got != tt.want {
			t.Errorf("mapType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestCreateTableSQL verifies statement shape, quoting, and validation errors.
func TestCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         ddl.TableDef
		wantSQL     string
		wantErr     bool
		errContains string
	}{
		{
			name:        "empty FQN returns error",
			def:         ddl.TableDef{Columns: []ddl.ColumnDef{{Name: "id", SQLType: ddl.TypeText}}},
			wantErr:     true,
			errContains: "table FQN must not be empty",
		},
		{
			name:        "no columns returns error",
			def:         ddl.TableDef{FQN: "t"},
			wantErr:     true,
			errContains: "at least one column is required",
		},
		{
			name:        "empty column name returns error",
			def:         ddl.TableDef{FQN: "t", Columns: []ddl.ColumnDef{{Name: "  ", SQLType: ddl.TypeText}}},
			wantErr:     true,
			errContains: "column with empty name",
		},
		{
			name: "text and real columns",
			def: ddl.TableDef{
				FQN: "transactions",
				Columns: []ddl.ColumnDef{
					{Name: "serial_no", SQLType: ddl.TypeText, Nullable: true},
					{Name: "transaction_price", SQLType: ddl.TypeReal, Nullable: true},
				},
			},
			wantSQL: "CREATE TABLE IF NOT EXISTS \"transactions\" (\n  \"serial_no\" TEXT,\n  \"transaction_price\" REAL\n);",
		},
		{
			name: "dotted name quotes each segment",
			def: ddl.TableDef{
				FQN: "main.transactions",
				Columns: []ddl.ColumnDef{
					{Name: "id", SQLType: "integer", Nullable: false, PrimaryKey: true},
				},
			},
			wantSQL: "CREATE TABLE IF NOT EXISTS \"main\".\"transactions\" (\n  \"id\" INTEGER NOT NULL,\n  PRIMARY KEY (\"id\")\n);",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := createTableSQL(tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("createTableSQL() error = nil, want non-nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("error = %q, want substring %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("createTableSQL() error = %v", err)
			}
			if got != tt.wantSQL {
				t.Fatalf("createTableSQL() =\n%s\nwant:\n%s", got, tt.wantSQL)
			}
		})
	}
}
