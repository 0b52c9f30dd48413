package mssql

import (
	"context"
	"fmt"
	"strings"

	"dataprep/internal/ddl"
	"dataprep/internal/storage"
)

// mapType maps a logical column kind into a SQL Server column type. The
// mapping is intentionally conservative and biased toward safe,
// widely-supported choices. Unknown kinds fall back to NVARCHAR(MAX).
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ddl.TypeReal, "float", "double":
		return "FLOAT"
	case "numeric", "decimal":
		return "DECIMAL(38, 10)"
	case "int", "integer", "bigint":
		return "BIGINT"
	case "bool", "boolean":
		return "BIT"
	case "date":
		return "DATE"
	case "timestamp", "datetime", "timestamptz":
		return "DATETIME2"
	case "uuid":
		return "UNIQUEIDENTIFIER"
	default:
		// Default to a flexible Unicode string type.
		return "NVARCHAR(MAX)"
	}
}

// createTableSQL returns a T-SQL script that creates a table matching the
// provided definition if it does not already exist. T-SQL has no CREATE TABLE
// IF NOT EXISTS, so the statement is wrapped in an OBJECT_ID guard:
//
//	IF OBJECT_ID(N'[schema].[table]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [schema].[table] (
//	    [col1] TYPE [NOT NULL] [DEFAULT expr],
//	    [col2] TYPE,
//	    PRIMARY KEY ([pk1], [pk2])
//	  );
//	END;
//
// ColumnDef.Default is emitted as raw SQL.
func createTableSQL(t ddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("mssql ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("mssql ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("mssql ddl: column with empty name in table %s", fqn)
		}
		if strings.TrimSpace(c.SQLType) == "" {
			return "", fmt.Errorf("mssql ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(msIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(mapType(c.SQLType))

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}

		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, msIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols,
			fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")),
		)
	}

	fqnQuoted := msFQN(fqn)

	// Indent inner CREATE TABLE for readability.
	stmt := fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n    %s\n  );\nEND;",
		fqnQuoted,
		fqnQuoted,
		strings.Join(cols, ",\n    "),
	)

	return stmt, nil
}

// ensureTable renders the guarded CREATE TABLE script for t and applies it
// via the repository. Registered as the "mssql" DDL bootstrapper.
func ensureTable(ctx context.Context, repo storage.Repository, t ddl.TableDef) error {
	stmt, err := createTableSQL(t)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, stmt)
}
