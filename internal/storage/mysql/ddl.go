package mysql

import (
	"context"
	"fmt"
	"strings"

	"dataprep/internal/ddl"
	"dataprep/internal/storage"
)

// mapType maps a logical column kind into a MySQL column type.
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ddl.TypeReal, "float", "double":
		return "DOUBLE"
	case "int", "integer", "bigint":
		return "BIGINT"
	case "bool", "boolean":
		return "TINYINT(1)"
	case "date":
		return "DATE"
	case "timestamp", "datetime":
		return "DATETIME"
	default:
		return "TEXT"
	}
}

// createTableSQL returns a MySQL CREATE TABLE IF NOT EXISTS statement for the
// given table definition, with identifiers quoted in backticks.
//
// TEXT columns cannot take part in an unsized index, so primary keys are only
// rendered for columns whose mapped type supports them; with TableFor-derived
// definitions no primary key is ever requested.
func createTableSQL(t ddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("mysql ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("mysql ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("mysql ddl: column with empty name in table %s", fqn)
		}

		line := myIdent(name) + " " + mapType(c.SQLType)
		if !c.Nullable {
			line += " NOT NULL"
		}
		cols = append(cols, line)

		if c.PrimaryKey {
			pks = append(pks, myIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		myFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// ensureTable renders the CREATE TABLE statement for t and applies it via the
// repository. Registered as the "mysql" DDL bootstrapper.
func ensureTable(ctx context.Context, repo storage.Repository, t ddl.TableDef) error {
	stmt, err := createTableSQL(t)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, stmt)
}
