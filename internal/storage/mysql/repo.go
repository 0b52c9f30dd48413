// Package mysql implements a MySQL repository on top of database/sql. MySQL
// has no COPY protocol, so CopyFrom issues a single multi-row INSERT per
// batch; callers control batch size to stay under max_allowed_packet.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Registers the "mysql" driver with database/sql.
	_ "github.com/go-sql-driver/mysql"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN     string   // DSN in go-sql-driver format, e.g., "user:pass@tcp(127.0.0.1:3306)/db"
	Table   string   // target table name, optionally "db.table"
	Columns []string // ordered columns for INSERT
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a MySQL connection pool using the provided DSN and
// returns a Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	close := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, close, nil
}

// CopyFrom inserts the batch with one multi-row INSERT statement. A single
// statement is atomic in MySQL, so a failed batch leaves the table untouched.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: no columns")
	}

	query, err := buildInsertSQL(r.cfg.Table, columns, len(rows))
	if err != nil {
		return 0, err
	}

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("mysql: CopyFrom: row %d length %d != columns length %d",
				i, len(row), len(columns))
		}
		args = append(args, row...)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", r.cfg.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Exec executes a SQL statement against the pool.
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	_, err := r.db.ExecContext(ctx, sqlText)
	return err
}

// buildInsertSQL renders "INSERT INTO `t` (`a`, `b`) VALUES (?, ?), (?, ?)"
// for numRows rows.
func buildInsertSQL(table string, columns []string, numRows int) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("mysql: table must not be empty")
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = myIdent(c)
	}

	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(myFQN(table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")
	for i := 0; i < numRows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tuple)
	}
	return sb.String(), nil
}

// myIdent safely quotes a MySQL identifier using backticks, escaping backticks.
func myIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

// myFQN quotes a possibly database-qualified name like "analytics.transactions"
// to "`analytics`.`transactions`". If no dot is present, returns a single
// quoted ident.
func myFQN(name string) string {
	parts := strings.Split(name, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, myIdent(p))
	}
	return strings.Join(out, ".")
}
