package postgres

import (
	"context"
	"fmt"
	"strings"

	"dataprep/internal/ddl"
	"dataprep/internal/storage"
)

// mapType normalizes a logical column kind into a Postgres SQL type.
//
//	"real"/"float"/"double"   -> DOUBLE PRECISION
//	"int"/"integer"/"bigint"  -> BIGINT
//	"bool"/"boolean"          -> BOOLEAN
//	"date"                    -> DATE
//	"timestamp"/"timestamptz" -> TIMESTAMPTZ
//	everything else           -> TEXT
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ddl.TypeReal, "float", "double":
		return "DOUBLE PRECISION"
	case "int", "integer", "bigint":
		return "BIGINT"
	case "bool", "boolean":
		return "BOOLEAN"
	case "date":
		return "DATE"
	case "timestamp", "timestamptz":
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}

// createTableSQL returns an idempotent CREATE TABLE IF NOT EXISTS statement
// for the given table definition, with every identifier quoted via pgIdent.
func createTableSQL(t ddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("postgres ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", fqn)
		}

		line := pgIdent(name) + " " + mapType(c.SQLType)
		if !c.Nullable {
			line += " NOT NULL"
		}
		cols = append(cols, line)

		if c.PrimaryKey {
			pks = append(pks, pgIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		pgFQN(fqn),
		strings.Join(cols, ",\n  "),
	), nil
}

// ensureTable creates the target Postgres table if it does not exist,
// issuing CREATE TABLE IF NOT EXISTS through the repository's Exec.
// Registered as the "postgres" DDL bootstrapper.
func ensureTable(ctx context.Context, repo storage.Repository, t ddl.TableDef) error {
	sql, err := createTableSQL(t)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, sql)
}
