package mysql

import (
	"strings"
	"testing"

	"dataprep/internal/ddl"
)

func TestMapTypeMySQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{ddl.TypeReal, "DOUBLE"},
		{"float", "DOUBLE"},
		{"double", "DOUBLE"},
		{"int", "BIGINT"},
		{"integer", "BIGINT"},
		{"bigint", "BIGINT"},
		{"bool", "TINYINT(1)"},
		{"date", "DATE"},
		{"timestamp", "DATETIME"},
		{"datetime", "DATETIME"},
		{ddl.TypeText, "TEXT"},
		{"", "TEXT"},
		{"whatever", "TEXT"},
	}
	for _, tt := range tests {
		if got := mapType(tt.in); got != tt.want {
			t.Errorf("mapType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateTableSQLMySQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		def         ddl.TableDef
		wantSQL     string
		errContains string
	}{
		{
			name:        "empty FQN",
			def:         ddl.TableDef{Columns: []ddl.ColumnDef{{Name: "id", SQLType: "bigint"}}},
			errContains: "table FQN must not be empty",
		},
		{
			name:        "no columns",
			def:         ddl.TableDef{FQN: "transactions"},
			errContains: "at least one column is required",
		},
		{
			name: "blank column name",
			def: ddl.TableDef{
				FQN:     "transactions",
				Columns: []ddl.ColumnDef{{Name: "", SQLType: "text"}},
			},
			errContains: "column with empty name",
		},
		{
			name: "flattened transaction table",
			def: ddl.TableFor("analytics.transactions",
				[]string{"serial_no", "transaction_price"}, []bool{false, true}),
			wantSQL: "CREATE TABLE IF NOT EXISTS `analytics`.`transactions` (\n" +
				"  `serial_no` TEXT,\n" +
				"  `transaction_price` DOUBLE\n" +
				");",
		},
		{
			name: "primary key and not null",
			def: ddl.TableDef{
				FQN: "events",
				Columns: []ddl.ColumnDef{
					{Name: "id", SQLType: "bigint", Nullable: false, PrimaryKey: true},
					{Name: "at", SQLType: "datetime", Nullable: true},
				},
			},
			wantSQL: "CREATE TABLE IF NOT EXISTS `events` (\n" +
				"  `id` BIGINT NOT NULL,\n" +
				"  `at` DATETIME,\n" +
				"  PRIMARY KEY (`id`)\n" +
				");",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := createTableSQL(tt.def)
			if tt.errContains != "" {
				if err == nil {
					t.Fatalf("createTableSQL() error = nil, want substring %q", tt.errContains)
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
