package sqlite

import (
	"context"
	"fmt"
	"strings"

	"dataprep/internal/ddl"
	"dataprep/internal/storage"
)

// mapType maps a logical column kind into a SQLite column type.
//
// SQLite supports dynamic typing, so this mapping prefers canonical
// affinities: float-ish kinds get REAL, integer-ish get INTEGER, everything
// else is TEXT.
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ddl.TypeReal, "float", "double":
		return "REAL"
	case "int", "integer", "bigint":
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// createTableSQL returns a SQLite CREATE TABLE statement for the given table
// definition. The statement has the form:
//
//	CREATE TABLE IF NOT EXISTS "table" (
//	  "col1" TYPE [NOT NULL],
//	  "col2" TYPE,
//	  PRIMARY KEY ("pk1", "pk2")
//	);
//
// TableDef.FQN is interpreted as a table name; if it contains dots (e.g.,
// "main.transactions"), each segment is individually quoted.
func createTableSQL(t ddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("sqlite ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("sqlite ddl: column with empty name in table %s", fqn)
		}

		var sb strings.Builder
		sb.WriteString(sqlIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(mapType(c.SQLType))

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, sqlIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols,
			fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")),
		)
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		sqlFQN(fqn),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

// ensureTable renders the CREATE TABLE statement for t and applies it via the
// repository. Registered as the "sqlite" DDL bootstrapper.
func ensureTable(ctx context.Context, repo storage.Repository, t ddl.TableDef) error {
	stmt, err := createTableSQL(t)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, stmt)
}
